package cmd

import (
	"fmt"
	"log/slog"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
)

// state is filled in before any subcommand runs.
type state struct {
	conf   *config.Config
	logger *slog.Logger
}

func Root() *cobra.Command {
	st := &state{}

	root := &cobra.Command{
		Use:   "tictactoe",
		Short: "Optimal tic-tac-toe by exhaustive minimax search",
		Long: heredoc.Doc(`tictactoe computes optimal tic-tac-toe moves by searching
			every line of play from the given position.

			Boards are written row by row using X, O and . for empty
			squares, with optional / between rows, e.g. "XX./OO./...".
			The player to move is derived from the number of marks:
			X moves whenever it has not placed more marks than O.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.load(cmd)
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "Path to config.yml")
	root.PersistentFlags().String("log-level", "", "Override the configured log level")

	root.AddCommand(Solve(st))
	root.AddCommand(Play(st))
	root.AddCommand(Serve(st))

	return root
}

func (that *state) load(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	conf, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		if conf.LogLevel, err = cmd.Flags().GetString("log-level"); err != nil {
			return err
		}
	}

	level, err := conf.SlogLevel()
	if err != nil {
		return err
	}

	that.conf = conf
	that.logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return nil
}
