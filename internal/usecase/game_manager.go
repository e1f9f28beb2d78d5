package usecase

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"lukechampine.com/frand"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const gameIDBytes = 8

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type searcher interface {
	Search(ctx context.Context, board tictactoe.Board) (minimax.Result, error)
}

// GameManager runs games between a human and the solver.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	searcher searcher
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, searcher searcher) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		searcher: searcher,
	}
}

// CreateGame starts a game. When the human plays O the solver opens.
func (that *GameManager) CreateGame(ctx context.Context, humanMark tictactoe.Player) (*entity.Game, error) {
	game := entity.NewGame(generateGameID(), humanMark)

	if !game.IsHumanTurn() {
		if err := that.botTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("failed to make opening turn: %w", err)
		}
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "humanMark", humanMark.String())

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn plays the human's action and, unless that ended the game, the solver's reply.
// An invalid action leaves the stored game untouched.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, action tictactoe.Action) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, err
	}

	if !game.IsHumanTurn() {
		return game, apperror.ErrNotYourTurn
	}

	if err = game.Play(action); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsOngoing() {
		if err = that.botTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner, "moves", len(game.Moves))
	}

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// Solve searches an arbitrary position. Terminal positions are not an error:
// they come back with ok set to false and their utility as the value.
func (that *GameManager) Solve(ctx context.Context, board tictactoe.Board) (minimax.Result, bool, error) {
	if err := board.Validate(); err != nil {
		return minimax.Result{}, false, err
	}

	result, err := that.searcher.Search(ctx, board)
	if errors.Is(err, apperror.ErrNoAvailableMoves) {
		return minimax.Result{Value: board.Utility()}, false, nil
	}

	if err != nil {
		return minimax.Result{}, false, fmt.Errorf("failed to solve board: %w", err)
	}

	return result, true, nil
}

func (that *GameManager) botTurn(ctx context.Context, game *entity.Game) error {
	result, err := that.searcher.Search(ctx, game.Board)
	if err != nil {
		return fmt.Errorf("failed to search: %w", err)
	}

	if err = game.Play(result.Action); err != nil {
		return fmt.Errorf("failed to play %s: %w", result.Action, err)
	}

	that.logger.Debug("bot turn", "gameID", game.ID, "action", result.Action.String(), "value", result.Value, "nodes", result.Nodes)

	return nil
}

func generateGameID() string {
	return hex.EncodeToString(frand.Bytes(gameIDBytes))
}
