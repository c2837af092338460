package apperror

import "errors"

// Codes reported to clients for rejected input.
const (
	CodeBadRequest     = "bad_request"
	CodeNotFound       = "not_found"
	CodeInvalidCell    = "invalid_cell"
	CodeCellOccupied   = "cell_occupied"
	CodeGameFinished   = "game_finished"
	CodeStepOutOfRange = "step_out_of_range"
	CodeInternal       = "internal"
)

// Code returns the client-facing code for err. Anything not in the
// taxonomy is CodeInternal.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidCell):
		return CodeInvalidCell
	case errors.Is(err, ErrStepOutOfRange):
		return CodeStepOutOfRange
	case errors.Is(err, ErrCellOccupied):
		return CodeCellOccupied
	case errors.Is(err, ErrGameFinished):
		return CodeGameFinished
	default:
		return CodeInternal
	}
}
