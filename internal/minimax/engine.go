package minimax

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// Order decides in which order root actions are tried, and so which of several
// equally good actions is returned.
type Order string

const (
	// OrderRowMajor tries actions top-left to bottom-right. Results are deterministic.
	OrderRowMajor Order = "row-major"
	// OrderShuffled tries actions in a random permutation on every search.
	OrderShuffled Order = "shuffled"
)

func ParseOrder(s string) (Order, error) {
	switch order := Order(s); order {
	case OrderRowMajor, OrderShuffled:
		return order, nil
	case "":
		return OrderRowMajor, nil
	default:
		return "", fmt.Errorf("unknown search order %q", s)
	}
}

// Result of a root search.
type Result struct {
	Action tictactoe.Action  `json:"action"`
	Value  tictactoe.Utility `json:"value"`
	Nodes  uint64            `json:"nodes"`
}

type Engine struct {
	logger *slog.Logger

	order    Order
	parallel bool
}

func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		logger: logger.With("component", "minimax"),
		order:  OrderRowMajor,
	}
}

func (that *Engine) SetOrder(order Order) {
	that.order = order
}

// SetParallel searches every root action in its own goroutine.
func (that *Engine) SetParallel(parallel bool) {
	that.parallel = parallel
}

// Search returns the optimal action for the player to move on board.
// It fails with apperror.ErrNoAvailableMoves when the board is terminal.
func (that *Engine) Search(ctx context.Context, board tictactoe.Board) (Result, error) {
	log := that.logger.With("method", "Search", "board", board.String())

	if board.IsTerminal() {
		return Result{Value: board.Utility()}, apperror.ErrNoAvailableMoves
	}

	actions := that.rootActions(board)
	started := time.Now()

	var (
		result Result
		err    error
	)

	if that.parallel {
		result, err = that.searchParallel(ctx, board, actions)
	} else {
		result, err = that.searchSequential(ctx, board, actions)
	}

	if err != nil {
		return Result{}, fmt.Errorf("search interrupted: %w", err)
	}

	log.Debug("search finished",
		"player", board.Player().String(),
		"action", result.Action.String(),
		"value", result.Value,
		"nodes", result.Nodes,
		"parallel", that.parallel,
		"elapsed", time.Since(started),
	)

	return result, nil
}

func (that *Engine) rootActions(board tictactoe.Board) []tictactoe.Action {
	actions := board.Actions()
	if that.order == OrderShuffled {
		frand.Shuffle(len(actions), func(i, j int) {
			actions[i], actions[j] = actions[j], actions[i]
		})
	}

	return actions
}

func (that *Engine) searchSequential(ctx context.Context, board tictactoe.Board, actions []tictactoe.Action) (Result, error) {
	s := &search{nodes: 1}
	values := make([]tictactoe.Utility, len(actions))

	for i, action := range actions {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		values[i] = s.value(board, action)
	}

	action, value, _ := pick(board.Player(), actions, values)

	return Result{Action: action, Value: value, Nodes: s.nodes}, nil
}

// searchParallel gives every root action its own goroutine and search counter.
// Children are independent board values, so nothing is shared but the output slots.
func (that *Engine) searchParallel(ctx context.Context, board tictactoe.Board, actions []tictactoe.Action) (Result, error) {
	values := make([]tictactoe.Utility, len(actions))
	searches := make([]search, len(actions))

	g, ctx := errgroup.WithContext(ctx)
	for i, action := range actions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			values[i] = searches[i].value(board, action)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	nodes := uint64(1)
	for i := range searches {
		nodes += searches[i].nodes
	}

	action, value, _ := pick(board.Player(), actions, values)

	return Result{Action: action, Value: value, Nodes: nodes}, nil
}
