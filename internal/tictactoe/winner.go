package tictactoe

import "github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"

// WinCombos - rows, columns and diagonals of the 3x3 grid.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// DetectWinner returns the player holding all three cells of any winning line.
func DetectWinner(board entity.Board) (entity.Mark, bool) {
	combo, ok := WinningLine(board)
	if !ok {
		return entity.EmptyCell, false
	}
	return board[combo[0]], true
}

// WinningLine returns the first line whose three cells carry the same mark.
func WinningLine(board entity.Board) ([3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return combo, true
		}
	}
	return [3]int{}, false
}

// StatusOf derives the status of a snapshot taken at the given step.
func StatusOf(board entity.Board, step int) entity.Status {
	if winner, ok := DetectWinner(board); ok {
		return entity.Status{State: entity.StateWon, Player: winner}
	}

	// the game goes on until every square is filled
	if board.IsFull() {
		return entity.Status{State: entity.StateDraw}
	}

	return entity.Status{State: entity.StateInProgress, Player: entity.PlayerForStep(step)}
}
