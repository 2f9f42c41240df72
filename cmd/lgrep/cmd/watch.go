package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ReedMe1234/lgrep/internal/indexer"
	"github.com/ReedMe1234/lgrep/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	var modelTag string

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch a directory and keep its index in sync",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runWatch(cmd, path, modelTag)
		},
	}

	cmd.Flags().StringVar(&modelTag, "model", envString("LGREP_MODEL", ""), "Embedding model (minilm, bge-small, nomic-embed, multilingual-e5-small)")

	return cmd
}

func runWatch(cmd *cobra.Command, path, modelTag string) error {
	root, err := resolveRoot(path)
	if err != nil {
		return err
	}

	cfg, err := loadOrDefaultConfig(root, modelTag)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cleanup := setupLogging(cfg.IndexDir)
	defer cleanup()

	embedder := newEmbedder(cfg)

	index, loadErr := openIndex(cfg)
	if loadErr != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "no index found, building one before watching")
		built, err := indexer.BuildIndex(cmd.Context(), cfg, embedder, nil)
		if err != nil {
			return err
		}
		index = built
	}

	w := watcher.New(cfg, index, embedder, slog.Default())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s (ctrl-c to stop)\n", root)
	return w.Watch(ctx)
}
