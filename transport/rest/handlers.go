package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var errBadRequest = errors.New("bad request")

type gameUseCase interface {
	CreateGame(ctx context.Context, humanMark tictactoe.Player) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, action tictactoe.Action) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
	Solve(ctx context.Context, board tictactoe.Board) (minimax.Result, bool, error)
}

type createGameRequest struct {
	HumanMark tictactoe.Player `json:"human_mark"`
}

type solveRequest struct {
	Board tictactoe.Board `json:"board"`
}

type solveResponse struct {
	Player tictactoe.Player  `json:"player"`
	Action *tictactoe.Action `json:"action"`
	Value  tictactoe.Utility `json:"value"`
	Nodes  uint64            `json:"nodes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger *slog.Logger
	uGame  gameUseCase
}

// NewHandler routes the game API.
func NewHandler(logger *slog.Logger, uGame gameUseCase) http.Handler {
	h := &handlers{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)
	mux.HandleFunc("POST /games", h.createGame)
	mux.HandleFunc("GET /games/{id}", h.getGame)
	mux.HandleFunc("DELETE /games/{id}", h.deleteGame)
	mux.HandleFunc("POST /games/{id}/turn", h.makeTurn)
	mux.HandleFunc("POST /solve", h.solve)

	return mux
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decode(r, &req); err != nil {
		that.writeError(w, err)
		return
	}

	game, err := that.uGame.CreateGame(r.Context(), req.HumanMark)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.uGame.DeleteGame(r.Context(), r.PathValue("id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var action tictactoe.Action
	if err := decode(r, &action); err != nil {
		that.writeError(w, err)
		return
	}

	game, err := that.uGame.MakeTurn(r.Context(), r.PathValue("id"), action)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) solve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := decode(r, &req); err != nil {
		that.writeError(w, err)
		return
	}

	result, ok, err := that.uGame.Solve(r.Context(), req.Board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	resp := solveResponse{
		Player: req.Board.Player(),
		Value:  result.Value,
		Nodes:  result.Nodes,
	}
	if ok {
		resp.Action = &result.Action
	}

	that.writeJSON(w, http.StatusOK, resp)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}

	return nil
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, apperror.ErrInvalidAction),
		errors.Is(err, apperror.ErrInvalidBoard):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
