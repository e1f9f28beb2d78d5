package tictactoe

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const rowSeparator = "/"

// ParseBoard reads the row-major notation produced by Board.String, e.g. "XX./OO./...".
// Row separators are optional; '-' and '_' are accepted for empty squares.
func ParseBoard(notation string) (Board, error) {
	cells := strings.ReplaceAll(strings.TrimSpace(notation), rowSeparator, "")

	var board Board
	if len(cells) != Size*Size {
		return board, fmt.Errorf("%w: expected %d cells, got %d in %q", apperror.ErrInvalidBoard, Size*Size, len(cells), notation)
	}

	for i, r := range cells {
		var cell Cell
		switch r {
		case 'X', 'x':
			cell = MarkX
		case 'O', 'o':
			cell = MarkO
		case '.', '-', '_':
			cell = Empty
		default:
			return board, fmt.Errorf("%w: unexpected character %q at %d", apperror.ErrInvalidBoard, r, i)
		}

		board[i/Size][i%Size] = cell
	}

	return board, nil
}

// String renders the board as three rows joined by '/'.
func (that Board) String() string {
	var sb strings.Builder
	for row := range that {
		if row > 0 {
			sb.WriteString(rowSeparator)
		}
		for _, c := range that[row] {
			sb.WriteString(c.String())
		}
	}

	return sb.String()
}

func (that Board) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Board) UnmarshalText(text []byte) error {
	board, err := ParseBoard(string(text))
	if err != nil {
		return err
	}

	*that = board
	return nil
}
