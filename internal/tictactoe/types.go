package tictactoe

import (
	"errors"
	"fmt"
)

// Cell is the content of a single board square.
type Cell uint8

const (
	Empty Cell = iota
	MarkX
	MarkO
)

func (that Cell) String() string {
	switch that {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return "."
	}
}

// Player returns the player owning the mark, false for an empty cell.
func (that Cell) Player() (Player, bool) {
	switch that {
	case MarkX:
		return X, true
	case MarkO:
		return O, true
	default:
		return X, false
	}
}

// Player is the side to move. It is never stored on a board, see Board.Player.
type Player uint8

const (
	X Player = iota
	O
)

func (that Player) Mark() Cell {
	if that == O {
		return MarkO
	}
	return MarkX
}

func (that Player) Opponent() Player {
	if that == O {
		return X
	}
	return O
}

func (that Player) String() string {
	return that.Mark().String()
}

func (that Player) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Player) UnmarshalText(text []byte) error {
	player, err := ParsePlayer(string(text))
	if err != nil {
		return err
	}

	*that = player
	return nil
}

var ErrUnknownPlayer = errors.New("unknown player")

// ParsePlayer accepts "X" or "O" in either case.
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "X", "x":
		return X, nil
	case "O", "o":
		return O, nil
	default:
		return X, fmt.Errorf("%w: %q", ErrUnknownPlayer, s)
	}
}

// Action is a (row, col) coordinate. It only has meaning together with a board.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Action) InBounds() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

func (that Action) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// Utility is the score of a terminal position from X's point of view.
type Utility int8

const (
	OWins Utility = -1
	Draw  Utility = 0
	XWins Utility = 1
)
