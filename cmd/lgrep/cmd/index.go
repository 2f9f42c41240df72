package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ReedMe1234/lgrep/internal/embed"
	"github.com/ReedMe1234/lgrep/internal/indexer"
)

func newIndexCmd() *cobra.Command {
	var (
		modelTag string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "index [path]",
		Short: "Build or refresh the vector index for a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runIndex(cmd, path, modelTag, force)
		},
	}

	cmd.Flags().StringVar(&modelTag, "model", envString("LGREP_MODEL", ""), "Embedding model (minilm, bge-small, nomic-embed, multilingual-e5-small)")
	cmd.Flags().BoolVar(&force, "force", false, "Rebuild the index from scratch even if one exists")

	return cmd
}

func runIndex(cmd *cobra.Command, path, modelTag string, force bool) error {
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
	ctx := cmd.Context()

	progress := func(done, total int) {
		fmt.Fprintf(cmd.OutOrStdout(), "\rembedding %d/%d", done, total)
		if done == total {
			fmt.Fprintln(cmd.OutOrStdout())
		}
	}

	if force || !cfg.Exists() {
		slog.Info("building index", slog.String("root", root), slog.String("model", string(cfg.Model)))
		index, err := indexer.BuildIndex(ctx, cfg, embedder, embed.ProgressFunc(progress))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "indexed %d chunks across %d files\n",
			index.Metadata().ChunkCount(), index.Metadata().FileCount())
		return nil
	}

	index, err := openIndex(cfg)
	if err != nil {
		return err
	}

	slog.Info("updating index", slog.String("root", root))
	stats, err := indexer.UpdateIndex(ctx, cfg, index, embedder, embed.ProgressFunc(progress))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added=%d updated=%d removed=%d unchanged=%d\n",
		stats.Added, stats.Updated, stats.Removed, stats.Unchanged)
	return nil
}
