package apperror

import "errors"

var (
	ErrInvalidAction    = errors.New("invalid action")
	ErrInvalidBoard     = errors.New("invalid board")
	ErrNoAvailableMoves = errors.New("no available moves")

	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrGameNotFound = errors.New("game not found")
)
