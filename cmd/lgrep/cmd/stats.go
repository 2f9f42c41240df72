package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [path]",
		Short: "Show index statistics for a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runStats(cmd, path)
		},
	}
	return cmd
}

func runStats(cmd *cobra.Command, path string) error {
	root, err := resolveRoot(path)
	if err != nil {
		return err
	}

	cfg, err := loadOrDefaultConfig(root, "")
	if err != nil {
		return err
	}

	index, err := openIndex(cfg)
	if err != nil {
		return err
	}

	meta := index.Metadata()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "root:       %s\n", cfg.RootPath)
	fmt.Fprintf(out, "index dir:  %s\n", cfg.IndexDir)
	fmt.Fprintf(out, "model:      %s (dim %d)\n", meta.ModelName, meta.Dimension)
	fmt.Fprintf(out, "files:      %d\n", meta.FileCount())
	fmt.Fprintf(out, "chunks:     %d\n", meta.ChunkCount())
	fmt.Fprintf(out, "next id:    %d\n", meta.NextID)
	return nil
}
