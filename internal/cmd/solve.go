package cmd

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-minimax/internal"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

func Solve(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "solve <board>",
		Short: "Print the best action for the player to move",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`solve searches the given board and prints the player to
			move, the optimal action, the value it guarantees (1 when X
			wins, -1 when O wins, 0 for a draw) and the number of
			positions visited.

			A finished board prints its outcome instead.`),
		Example: `  tictactoe solve "XX./OO./..."`,

		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := tictactoe.ParseBoard(args[0])
			if err != nil {
				return err
			}

			if err = board.Validate(); err != nil {
				return err
			}

			engine, err := application.NewEngine(st.logger, st.conf)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			result, err := engine.Search(cmd.Context(), board)
			if errors.Is(err, apperror.ErrNoAvailableMoves) {
				fmt.Fprintf(out, "game over: %s\n", outcome(board))
				return nil
			}

			if err != nil {
				return err
			}

			fmt.Fprintf(out, "player: %s\n", board.Player())
			fmt.Fprintf(out, "action: %s\n", result.Action)
			fmt.Fprintf(out, "value:  %d\n", result.Value)
			fmt.Fprintf(out, "nodes:  %d\n", result.Nodes)

			return nil
		},
	}
}

// outcome describes a terminal board.
func outcome(board tictactoe.Board) string {
	if winner, ok := board.Winner(); ok {
		return winner.String() + " wins"
	}

	return "draw"
}
