package tictactoe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

func TestParseBoard(t *testing.T) {
	t.Run("With row separators", func(t *testing.T) {
		// When: parsing a board with separators
		board, err := ParseBoard("XX./OO./...")

		// Then: the cells are read row by row
		require.NoError(t, err)
		expected := Board{
			{MarkX, MarkX, Empty},
			{MarkO, MarkO, Empty},
			{Empty, Empty, Empty},
		}
		assert.Equal(t, expected, board)
	})

	t.Run("Without separators and with alternative empty marks", func(t *testing.T) {
		board, err := ParseBoard(" x-_o_-... ")

		require.NoError(t, err)
		assert.Equal(t, "X../O../...", board.String())
	})

	t.Run("Wrong length", func(t *testing.T) {
		_, err := ParseBoard("XX./OO.")

		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})

	t.Run("Unknown character", func(t *testing.T) {
		_, err := ParseBoard("XX./OZ./...")

		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
		assert.Contains(t, err.Error(), "'Z'")
	})
}

func TestBoard_JSON(t *testing.T) {
	// Given: a struct holding a board and a player
	type payload struct {
		Board  Board  `json:"board"`
		Player Player `json:"player"`
	}

	board, err := ParseBoard("X../.O./..X")
	require.NoError(t, err)

	// When: it is encoded
	data, err := json.Marshal(payload{Board: board, Player: O})
	require.NoError(t, err)

	// Then: both are rendered in board notation
	assert.JSONEq(t, `{"board":"X../.O./..X","player":"O"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, board, decoded.Board)
	assert.Equal(t, O, decoded.Player)
}
