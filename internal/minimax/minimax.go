// Package minimax finds optimal tic-tac-toe moves by exhaustive game-tree search.
// There is no pruning and no memoization: every line of play below the given
// board is visited, which stays tractable because the tree is at most 9 plies deep.
package minimax

import (
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// BestAction returns the optimal action for the player to move, or false when
// the board is terminal. Ties go to the first action in board.Actions() order.
func BestAction(board tictactoe.Board) (tictactoe.Action, bool) {
	s := &search{}
	best, _, ok := s.bestOf(board, board.Actions())

	return best, ok
}

// MaxValue is the utility X can force from board when X is to move.
func MaxValue(board tictactoe.Board) tictactoe.Utility {
	return (&search{}).maxValue(board)
}

// MinValue is the utility O can force from board when O is to move.
func MinValue(board tictactoe.Board) tictactoe.Utility {
	return (&search{}).minValue(board)
}

// search carries the node counter of a single search through the recursion.
type search struct {
	nodes uint64
}

func (that *search) maxValue(board tictactoe.Board) tictactoe.Utility {
	that.nodes++
	if board.IsTerminal() {
		return board.Utility()
	}

	value := tictactoe.OWins - 1
	for _, action := range board.Actions() {
		value = max(value, that.minValue(that.child(board, action)))
	}

	return value
}

func (that *search) minValue(board tictactoe.Board) tictactoe.Utility {
	that.nodes++
	if board.IsTerminal() {
		return board.Utility()
	}

	value := tictactoe.XWins + 1
	for _, action := range board.Actions() {
		value = min(value, that.maxValue(that.child(board, action)))
	}

	return value
}

// value scores the child reached by action from the mover's opponent's side.
func (that *search) value(board tictactoe.Board, action tictactoe.Action) tictactoe.Utility {
	child := that.child(board, action)
	if board.Player() == tictactoe.X {
		return that.minValue(child)
	}

	return that.maxValue(child)
}

// child applies an action taken from board.Actions(), which cannot fail.
func (that *search) child(board tictactoe.Board, action tictactoe.Action) tictactoe.Board {
	next, err := board.Apply(action)
	if err != nil {
		panic(err)
	}

	return next
}

// bestOf evaluates actions in the given order and keeps the first strictly better one.
func (that *search) bestOf(board tictactoe.Board, actions []tictactoe.Action) (tictactoe.Action, tictactoe.Utility, bool) {
	if board.IsTerminal() {
		return tictactoe.Action{}, board.Utility(), false
	}

	values := make([]tictactoe.Utility, len(actions))
	for i, action := range actions {
		values[i] = that.value(board, action)
	}

	return pick(board.Player(), actions, values)
}

// pick selects the maximizing action for X and the minimizing one for O.
// Strict comparison makes the earliest action win ties.
func pick(mover tictactoe.Player, actions []tictactoe.Action, values []tictactoe.Utility) (tictactoe.Action, tictactoe.Utility, bool) {
	if len(actions) == 0 {
		return tictactoe.Action{}, tictactoe.Draw, false
	}

	best, bestValue := actions[0], values[0]
	for i := 1; i < len(actions); i++ {
		better := values[i] > bestValue
		if mover == tictactoe.O {
			better = values[i] < bestValue
		}

		if better {
			best, bestValue = actions[i], values[i]
		}
	}

	return best, bestValue, true
}
