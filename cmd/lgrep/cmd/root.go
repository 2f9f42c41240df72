// Package cmd implements lgrep's command-line surface.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ReedMe1234/lgrep/pkg/version"
)

// NewRootCmd builds the lgrep root command. A bare query with no
// subcommand routes to search (spec §6).
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lgrep [query]",
		Short: "Fully local semantic code search",
		Long: `lgrep builds a persistent vector index over a codebase's source
files and answers natural-language queries by nearest-neighbor search
over chunk embeddings, entirely on your machine.

Run 'lgrep index' once, then 'lgrep <query>' to search.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runSearch(cmd, strings.Join(args, " "), "")
		},
	}
	cmd.SetVersionTemplate("lgrep version {{.Version}}\n")

	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newModelsCmd())
	cmd.AddCommand(newHistoryCmd())

	return cmd
}

// Execute runs the root command, printing any error to stderr.
func Execute() error {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln(userFacingError(err))
		return err
	}
	return nil
}
