package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

var errNoChange = errors.New("no cell changed")

// History keeps every snapshot of a game and a cursor on the one being shown.
// Snapshot 0 is always the empty board.
type History struct {
	snapshots []entity.Board
	step      int
}

func NewHistory() *History {
	return &History{
		snapshots: []entity.Board{{}},
	}
}

// RestoreHistory rebuilds a history from stored snapshots, rejecting anything
// NewHistory and ApplyMove could not have produced.
func RestoreHistory(snapshots []entity.Board, step int) (*History, error) {
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("%w: no snapshots", apperror.ErrCorruptHistory)
	}

	if snapshots[0] != (entity.Board{}) {
		return nil, fmt.Errorf("%w: first snapshot is not empty", apperror.ErrCorruptHistory)
	}

	for i := 1; i < len(snapshots); i++ {
		if err := validateTransition(snapshots[i-1], snapshots[i], i-1); err != nil {
			return nil, fmt.Errorf("%w: snapshot %d: %w", apperror.ErrCorruptHistory, i, err)
		}
	}

	if step < 0 || step >= len(snapshots) {
		return nil, fmt.Errorf("%w: step %d of %d", apperror.ErrCorruptHistory, step, len(snapshots))
	}

	restored := make([]entity.Board, len(snapshots))
	copy(restored, snapshots)

	return &History{snapshots: restored, step: step}, nil
}

// ApplyMove places the current player's mark on cell. Any snapshots after the
// cursor are dropped first. A rejected move leaves the history untouched.
func (that *History) ApplyMove(cell int) error {
	if cell < 0 || cell >= entity.BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	board := that.snapshots[that.step]

	if winner, ok := DetectWinner(board); ok {
		return fmt.Errorf("%w: %s won", apperror.ErrGameFinished, winner)
	}

	if board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	board[cell] = entity.PlayerForStep(that.step)

	that.snapshots = append(that.snapshots[:that.step+1], board)
	that.step = len(that.snapshots) - 1

	return nil
}

// JumpTo moves the cursor without touching the snapshots.
func (that *History) JumpTo(step int) error {
	if step < 0 || step >= len(that.snapshots) {
		return fmt.Errorf("%w: step %d of %d", apperror.ErrStepOutOfRange, step, len(that.snapshots))
	}

	that.step = step

	return nil
}

func (that *History) CurrentBoard() entity.Board {
	return that.snapshots[that.step]
}

func (that *History) Status() entity.Status {
	return StatusOf(that.CurrentBoard(), that.step)
}

func (that *History) NextPlayer() entity.Mark {
	return entity.PlayerForStep(that.step)
}

func (that *History) Step() int {
	return that.step
}

func (that *History) Len() int {
	return len(that.snapshots)
}

// Snapshots returns a copy of every snapshot, oldest first.
func (that *History) Snapshots() []entity.Board {
	out := make([]entity.Board, len(that.snapshots))
	copy(out, that.snapshots)
	return out
}

// Moves lists the move that produced each snapshot after the first.
func (that *History) Moves() []entity.Move {
	moves := make([]entity.Move, 0, len(that.snapshots)-1)
	for i := 1; i < len(that.snapshots); i++ {
		prev, next := that.snapshots[i-1], that.snapshots[i]
		for cell := range next {
			if prev[cell] != next[cell] {
				moves = append(moves, entity.Move{Step: i, Player: next[cell], Cell: cell})
				break
			}
		}
	}
	return moves
}

// Session converts the history into its persisted form.
func (that *History) Session(id string) *entity.Session {
	return &entity.Session{
		ID:      id,
		History: that.Snapshots(),
		Step:    that.step,
	}
}

// FromSession restores the history stored in a session.
func FromSession(session *entity.Session) (*History, error) {
	return RestoreHistory(session.History, session.Step)
}

// validateTransition checks that next is prev with exactly one empty cell
// filled by the player whose turn it was at step, and that prev was not won.
func validateTransition(prev, next entity.Board, step int) error {
	if _, ok := DetectWinner(prev); ok {
		return apperror.ErrGameFinished
	}

	changed := -1
	for cell := range next {
		if prev[cell] == next[cell] {
			continue
		}
		if changed != -1 {
			return fmt.Errorf("cells %d and %d both changed", changed, cell)
		}
		changed = cell
	}

	if changed == -1 {
		return errNoChange
	}

	if prev[changed] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, changed)
	}

	if want := entity.PlayerForStep(step); next[changed] != want {
		return fmt.Errorf("cell %d holds %q, want %q", changed, next[changed], want)
	}

	return nil
}
