package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

// Size is the side length of the board.
const Size = 3

// WinCombos lists every line in the order Winner scans them:
// rows, columns, main diagonal, anti-diagonal.
var WinCombos = [8][3]Action{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a 3x3 grid. It is an array, so every copy is independent and
// Apply never touches its receiver.
type Board [Size][Size]Cell

// InitialState returns the empty board.
func InitialState() Board {
	return Board{}
}

// Cell returns the content of the square referenced by action.
// The action must be in bounds.
func (that Board) Cell(action Action) Cell {
	return that[action.Row][action.Col]
}

func (that Board) Count(cell Cell) int {
	count := 0
	for row := range that {
		for _, c := range that[row] {
			if c == cell {
				count++
			}
		}
	}

	return count
}

// Player returns the side to move: X whenever X has not placed more marks than O.
func (that Board) Player() Player {
	if that.Count(MarkX) <= that.Count(MarkO) {
		return X
	}
	return O
}

// Actions returns every empty square in row-major order.
// Callers must not rely on the order for anything but tie-breaking.
func (that Board) Actions() []Action {
	actions := make([]Action, 0, Size*Size)
	for row := range that {
		for col, c := range that[row] {
			if c == Empty {
				actions = append(actions, Action{Row: row, Col: col})
			}
		}
	}

	return actions
}

// Apply returns the board after the player to move marks action.
func (that Board) Apply(action Action) (Board, error) {
	if !action.InBounds() {
		return that, fmt.Errorf("%w: cell %s is out of range", apperror.ErrInvalidAction, action)
	}

	if that.Cell(action) != Empty {
		return that, fmt.Errorf("%w: cell %s is already occupied", apperror.ErrInvalidAction, action)
	}

	next := that
	next[action.Row][action.Col] = that.Player().Mark()

	return next, nil
}

// Winner returns the owner of the first completed line, if any.
func (that Board) Winner() (Player, bool) {
	for _, combo := range WinCombos {
		a, b, c := that.Cell(combo[0]), that.Cell(combo[1]), that.Cell(combo[2])
		if a != Empty && a == b && b == c {
			return a.Player()
		}
	}

	return X, false
}

// IsTerminal reports whether the game is over: someone won or the board is full.
func (that Board) IsTerminal() bool {
	if _, ok := that.Winner(); ok {
		return true
	}

	return that.Count(Empty) == 0
}

// Utility is 1 when X won, -1 when O won and 0 otherwise,
// including boards that are not terminal yet.
func (that Board) Utility() Utility {
	winner, ok := that.Winner()
	switch {
	case !ok:
		return Draw
	case winner == X:
		return XWins
	default:
		return OWins
	}
}

// Validate checks that the board could have come out of legal play.
func (that Board) Validate() error {
	diff := that.Count(MarkX) - that.Count(MarkO)
	if diff != 0 && diff != 1 {
		return fmt.Errorf("%w: X has %d marks and O has %d", apperror.ErrInvalidBoard, that.Count(MarkX), that.Count(MarkO))
	}

	lines := map[Cell]bool{}
	for _, combo := range WinCombos {
		a, b, c := that.Cell(combo[0]), that.Cell(combo[1]), that.Cell(combo[2])
		if a != Empty && a == b && b == c {
			lines[a] = true
		}
	}

	if lines[MarkX] && lines[MarkO] {
		return fmt.Errorf("%w: both players have a completed line", apperror.ErrInvalidBoard)
	}

	// the winner made the last move, so the mark counts follow from who won
	if lines[MarkX] && diff != 1 {
		return fmt.Errorf("%w: O moved after X completed a line", apperror.ErrInvalidBoard)
	}

	if lines[MarkO] && diff != 0 {
		return fmt.Errorf("%w: X moved after O completed a line", apperror.ErrInvalidBoard)
	}

	return nil
}
