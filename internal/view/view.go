// Package view projects a game history into what a client renders: the cells,
// the status line and one "go to" control per step.
package view

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type Game struct {
	ID          string        `json:"id"`
	Board       [9]string     `json:"board"`
	Status      entity.Status `json:"status"`
	StatusText  string        `json:"status_text"`
	Step        int           `json:"step"`
	WinningLine []int         `json:"winning_line,omitempty"`
	Steps       []Step        `json:"steps"`
}

type Step struct {
	Step    int         `json:"step"`
	Label   string      `json:"label"`
	Current bool        `json:"current"`
	Move    *MoveDetail `json:"move,omitempty"`
}

type MoveDetail struct {
	Player entity.Mark `json:"player"`
	Cell   int         `json:"cell"`
	Row    int         `json:"row"`
	Col    int         `json:"col"`
}

// Project builds the view of the history at its current step.
func Project(id string, history *tictactoe.History) *Game {
	board := history.CurrentBoard()
	status := history.Status()

	game := &Game{
		ID:         id,
		Status:     status,
		StatusText: StatusText(status),
		Step:       history.Step(),
		Steps:      make([]Step, 0, history.Len()),
	}

	for i, cell := range board {
		game.Board[i] = string(cell)
	}

	if line, ok := tictactoe.WinningLine(board); ok {
		game.WinningLine = line[:]
	}

	game.Steps = append(game.Steps, Step{
		Step:    0,
		Label:   StepLabel(0),
		Current: history.Step() == 0,
	})

	for _, move := range history.Moves() {
		game.Steps = append(game.Steps, Step{
			Step:    move.Step,
			Label:   StepLabel(move.Step),
			Current: history.Step() == move.Step,
			Move: &MoveDetail{
				Player: move.Player,
				Cell:   move.Cell,
				Row:    move.Row(),
				Col:    move.Col(),
			},
		})
	}

	return game
}

func StatusText(status entity.Status) string {
	switch status.State {
	case entity.StateWon:
		return "Winner: " + string(status.Player)
	case entity.StateDraw:
		return "Draw"
	default:
		return "Next player: " + string(status.Player)
	}
}

func StepLabel(step int) string {
	if step == 0 {
		return "Go to game start"
	}
	return fmt.Sprintf("Go to move #%d", step)
}
