package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var errRedisDown = errors.New("redis down")

func newTestManager(t *testing.T) (*GameManager, *mockGameRepo) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := &mockGameRepo{}
	t.Cleanup(func() {
		repo.AssertExpectations(t)
	})

	return NewGameManager(logger, repo, minimax.NewEngine(logger)), repo
}

func mustParse(t *testing.T, notation string) tictactoe.Board {
	t.Helper()

	board, err := tictactoe.ParseBoard(notation)
	require.NoError(t, err)

	return board
}

func TestGameManager_CreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Human plays X", func(t *testing.T) {
		// Given: a repository accepting the new game
		manager, repo := newTestManager(t)
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(nil).Once()

		// When: a game is created for X
		game, err := manager.CreateGame(ctx, tictactoe.X)

		// Then: the board is empty and it is the human's turn
		require.NoError(t, err)
		assert.Len(t, game.ID, 16)
		assert.Equal(t, tictactoe.InitialState(), game.Board)
		assert.True(t, game.IsHumanTurn())
	})

	t.Run("Human plays O", func(t *testing.T) {
		manager, repo := newTestManager(t)
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(nil).Once()

		// When: a game is created for O
		game, err := manager.CreateGame(ctx, tictactoe.O)

		// Then: the solver has already opened
		require.NoError(t, err)
		assert.Len(t, game.Moves, 1)
		assert.Equal(t, 1, game.Board.Count(tictactoe.MarkX))
		assert.True(t, game.IsHumanTurn())
	})

	t.Run("Returns error if repository fails", func(t *testing.T) {
		manager, repo := newTestManager(t)
		repo.On("CreateOrUpdate", mock.Anything, mock.Anything).Return(errRedisDown).Once()

		game, err := manager.CreateGame(ctx, tictactoe.X)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("The solver answers the human move", func(t *testing.T) {
		// Given: a new game where the human plays X
		manager, repo := newTestManager(t)
		game := entity.NewGame("g1", tictactoe.X)
		repo.On("GetByID", mock.Anything, "g1").Return(game, nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, game).Return(nil).Once()

		// When: the human takes a corner
		updated, err := manager.MakeTurn(ctx, "g1", tictactoe.Action{Row: 0, Col: 0})

		// Then: the solver replied with the only move that does not lose
		require.NoError(t, err)
		require.Len(t, updated.Moves, 2)
		assert.Equal(t, tictactoe.Action{Row: 1, Col: 1}, updated.Moves[1])
		assert.True(t, updated.IsHumanTurn())
		assert.True(t, updated.IsOngoing())
	})

	t.Run("The solver wins when given the chance", func(t *testing.T) {
		// Given: the solver (O) threatens the top row
		manager, repo := newTestManager(t)
		game := entity.NewGame("g2", tictactoe.X)
		game.Board = mustParse(t, "OO./.X./..X")
		repo.On("GetByID", mock.Anything, "g2").Return(game, nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, game).Return(nil).Once()

		// When: the human ignores the threat
		updated, err := manager.MakeTurn(ctx, "g2", tictactoe.Action{Row: 2, Col: 0})

		// Then: the solver completes the row and the game is finished
		require.NoError(t, err)
		assert.True(t, updated.IsFinished())
		assert.Equal(t, "O", updated.Winner)
		assert.Equal(t, "OOO/.X./X.X", updated.Board.String())
	})

	t.Run("Human finishes the game", func(t *testing.T) {
		manager, repo := newTestManager(t)
		game := entity.NewGame("g3", tictactoe.X)
		game.Board = mustParse(t, "XX./OO./...")
		repo.On("GetByID", mock.Anything, "g3").Return(game, nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, game).Return(nil).Once()

		updated, err := manager.MakeTurn(ctx, "g3", tictactoe.Action{Row: 0, Col: 2})

		require.NoError(t, err)
		assert.Equal(t, "X", updated.Winner)
		assert.Len(t, updated.Moves, 1)
	})

	t.Run("Invalid action is not saved", func(t *testing.T) {
		// Given: a game with the center taken
		manager, repo := newTestManager(t)
		game := entity.NewGame("g4", tictactoe.X)
		game.Board = mustParse(t, ".../.X./O..")
		repo.On("GetByID", mock.Anything, "g4").Return(game, nil).Once()

		// When: the human plays the center again
		updated, err := manager.MakeTurn(ctx, "g4", tictactoe.Action{Row: 1, Col: 1})

		// Then: ErrInvalidAction propagates and nothing is stored
		require.ErrorIs(t, err, apperror.ErrInvalidAction)
		assert.Nil(t, updated)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Finished game", func(t *testing.T) {
		manager, repo := newTestManager(t)
		game := entity.NewGame("g5", tictactoe.X)
		game.Board = mustParse(t, "XXX/OO./...")
		game.UpdateGameState()
		repo.On("GetByID", mock.Anything, "g5").Return(game, nil).Once()

		_, err := manager.MakeTurn(ctx, "g5", tictactoe.Action{Row: 2, Col: 2})

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Not the human's turn", func(t *testing.T) {
		manager, repo := newTestManager(t)
		game := entity.NewGame("g6", tictactoe.O)
		repo.On("GetByID", mock.Anything, "g6").Return(game, nil).Once()

		_, err := manager.MakeTurn(ctx, "g6", tictactoe.Action{Row: 0, Col: 0})

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Game not found", func(t *testing.T) {
		manager, repo := newTestManager(t)
		repo.On("GetByID", mock.Anything, "missing").Return(&entity.Game{}, apperror.ErrGameNotFound).Once()

		_, err := manager.MakeTurn(ctx, "missing", tictactoe.Action{})

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Search failure is reported", func(t *testing.T) {
		// Given: a searcher that was interrupted
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		repo := &mockGameRepo{}
		searcher := &mockSearcher{}
		manager := NewGameManager(logger, repo, searcher)

		game := entity.NewGame("g7", tictactoe.X)
		repo.On("GetByID", mock.Anything, "g7").Return(game, nil).Once()
		searcher.On("Search", mock.Anything, mock.Anything).Return(minimax.Result{}, context.DeadlineExceeded).Once()

		// When: the human moves
		_, err := manager.MakeTurn(ctx, "g7", tictactoe.Action{Row: 0, Col: 0})

		// Then: the search error is returned and nothing is stored
		require.ErrorIs(t, err, context.DeadlineExceeded)
		repo.AssertExpectations(t)
		searcher.AssertExpectations(t)
	})
}

func TestGameManager_DeleteGame(t *testing.T) {
	manager, repo := newTestManager(t)
	repo.On("DeleteByID", mock.Anything, "g1").Return(nil).Once()
	repo.On("DeleteByID", mock.Anything, "g2").Return(apperror.ErrGameNotFound).Once()

	require.NoError(t, manager.DeleteGame(context.Background(), "g1"))
	require.ErrorIs(t, manager.DeleteGame(context.Background(), "g2"), apperror.ErrGameNotFound)
}

func TestGameManager_Solve(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the winning move", func(t *testing.T) {
		manager, _ := newTestManager(t)

		result, ok, err := manager.Solve(ctx, mustParse(t, "XX./OO./..."))

		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, tictactoe.Action{Row: 0, Col: 2}, result.Action)
		assert.Equal(t, tictactoe.XWins, result.Value)
	})

	t.Run("Terminal board", func(t *testing.T) {
		manager, _ := newTestManager(t)

		result, ok, err := manager.Solve(ctx, mustParse(t, "OOO/XX./X.."))

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, tictactoe.OWins, result.Value)
	})

	t.Run("Unreachable board", func(t *testing.T) {
		manager, _ := newTestManager(t)

		_, _, err := manager.Solve(ctx, mustParse(t, "OO./.../..."))

		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})
}
