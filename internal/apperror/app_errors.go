package apperror

import "errors"

var (
	ErrGameFinished    = errors.New("game is already finished")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrStepOutOfRange  = errors.New("step is out of range")
	ErrCorruptHistory  = errors.New("history is corrupt")
	ErrSessionNotFound = errors.New("session not found")
)
