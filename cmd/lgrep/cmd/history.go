package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ReedMe1234/lgrep/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit int
		top   bool
		clear bool
	)

	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show or clear past search queries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runHistory(cmd, path, limit, top, clear)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	cmd.Flags().BoolVar(&top, "top", false, "Show the most frequent queries instead of the most recent")
	cmd.Flags().BoolVar(&clear, "clear", false, "Clear all history")

	return cmd
}

func runHistory(cmd *cobra.Command, path string, limit int, top, clear bool) error {
	root, err := resolveRoot(path)
	if err != nil {
		return err
	}

	cfg, err := loadOrDefaultConfig(root, "")
	if err != nil {
		return err
	}

	h, err := history.Load(cfg.HistoryPath())
	if err != nil {
		return err
	}

	if clear {
		h.Clear()
		if err := h.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
		return nil
	}

	out := cmd.OutOrStdout()
	if top {
		for i, qc := range h.TopQueries(limit) {
			fmt.Fprintf(out, "%2d. %-40s (%d)\n", i+1, qc.Query, qc.Count)
		}
		return nil
	}

	for i, e := range h.Recent(limit) {
		ts := time.Unix(e.Timestamp, 0).Format(time.RFC3339)
		fmt.Fprintf(out, "%2d. [%s] %-40s %d results\n", i+1, ts, e.Query, e.ResultCount)
	}
	return nil
}
