package cmd

import (
	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-minimax/internal"
)

func Serve(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for games against the solver",
		Args:  cobra.NoArgs,

		RunE: func(_ *cobra.Command, _ []string) error {
			return application.RunApp(st.logger, st.conf)
		},
	}
}
