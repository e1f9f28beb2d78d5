package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-minimax/internal"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

func Play(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Let the solver play both sides until the game ends",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			from, err := cmd.Flags().GetString("from")
			if err != nil {
				return err
			}

			board := tictactoe.InitialState()
			if from != "" {
				if board, err = tictactoe.ParseBoard(from); err != nil {
					return err
				}

				if err = board.Validate(); err != nil {
					return err
				}
			}

			engine, err := application.NewEngine(st.logger, st.conf)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for ply := 1; !board.IsTerminal(); ply++ {
				mover := board.Player()

				result, err := engine.Search(cmd.Context(), board)
				if err != nil {
					return err
				}

				if board, err = board.Apply(result.Action); err != nil {
					return err
				}

				fmt.Fprintf(out, "%d. %s %s  %s\n", ply, mover, result.Action, board)
			}

			fmt.Fprintf(out, "result: %s (utility %d)\n", outcome(board), board.Utility())

			return nil
		},
	}

	cmd.Flags().String("from", "", "Start from this board instead of the empty one")

	return cmd
}
