package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ReedMe1234/lgrep/internal/config"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the supported embedding models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, m := range config.Models() {
				marker := " "
				if m == config.DefaultModel {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-24s dim=%d\n", marker, m, m.Dimension())
			}
			return nil
		},
	}
}
