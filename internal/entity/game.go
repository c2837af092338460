package entity

import "strings"

// Mark is the content of a single cell: a player's mark or EmptyCell.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const (
	BoardSize = 9
	RowSize   = 3
)

// Board is one snapshot of the grid, indexed 0-8 in row-major order.
type Board [BoardSize]Mark

type State string

const (
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateDraw       State = "draw"
)

// Status - derived state of a board. Player is the next player for StateInProgress,
// the winner for StateWon and empty for StateDraw.
type Status struct {
	State  State `json:"state"`
	Player Mark  `json:"player,omitempty"`
}

// Move - a single filled cell, as seen between two consecutive snapshots.
type Move struct {
	Step   int  `json:"step"`
	Player Mark `json:"player"`
	Cell   int  `json:"cell"`
}

// PlayerForStep - X moves on even steps, O on odd ones.
func PlayerForStep(step int) Mark {
	if step%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// String renders the board as three rows, blanks shown as ".".
func (that Board) String() string {
	var sb strings.Builder
	for i, cell := range that {
		if cell == EmptyCell {
			sb.WriteByte('.')
		} else {
			sb.WriteString(string(cell))
		}
		if i%RowSize == RowSize-1 && i != BoardSize-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (that Move) Row() int {
	return that.Cell / RowSize
}

func (that Move) Col() int {
	return that.Cell % RowSize
}

func (that Status) IsFinished() bool {
	return that.State == StateWon || that.State == StateDraw
}
