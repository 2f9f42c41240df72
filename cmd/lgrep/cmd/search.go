package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ReedMe1234/lgrep/internal/history"
	"github.com/ReedMe1234/lgrep/internal/indexer"
	lsearch "github.com/ReedMe1234/lgrep/internal/search"
	"github.com/ReedMe1234/lgrep/internal/store"
)

type searchOptions struct {
	path         string
	maxCount     int
	content      bool
	json         bool
	sync         bool
	extensions   []string
	languages    []string
	pathPattern  string
	excludeRegex string
	minScore     float32
	keyword      string
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query> [path]",
		Short: "Search the index for a natural-language query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			if len(args) > 1 {
				opts.path = args[1]
			}
			return runSearchWithOptions(cmd, query, opts)
		},
	}

	cmd.Flags().IntVar(&opts.maxCount, "max-count", envInt("LGREP_MAX_COUNT", 10), "Maximum number of results")
	cmd.Flags().BoolVar(&opts.content, "content", envBool("LGREP_CONTENT", false), "Include a content preview in results")
	cmd.Flags().BoolVar(&opts.json, "json", envBool("LGREP_JSON", false), "Output results as JSON")
	cmd.Flags().BoolVar(&opts.sync, "sync", envBool("LGREP_SYNC", false), "Run an incremental update before searching")
	cmd.Flags().StringSliceVar(&opts.extensions, "ext", nil, "Restrict results to these file extensions")
	cmd.Flags().StringSliceVar(&opts.languages, "lang", nil, "Restrict results to these languages")
	cmd.Flags().StringVar(&opts.pathPattern, "path-pattern", "", "Restrict results to file paths matching this regex")
	cmd.Flags().StringVar(&opts.excludeRegex, "exclude", "", "Exclude file paths matching this regex")
	cmd.Flags().Float32Var(&opts.minScore, "min-score", 0, "Minimum cosine score")
	cmd.Flags().StringVar(&opts.keyword, "keyword", "", "Require chunk text to match this regex (hybrid search)")

	return cmd
}

// runSearch handles the bare-query routing from the root command: no path
// and no filters, just the defaults an env var might supply.
func runSearch(cmd *cobra.Command, query, _ string) error {
	return runSearchWithOptions(cmd, query, searchOptions{
		maxCount: envInt("LGREP_MAX_COUNT", 10),
		content:  envBool("LGREP_CONTENT", false),
		json:     envBool("LGREP_JSON", false),
		sync:     envBool("LGREP_SYNC", false),
	})
}

func runSearchWithOptions(cmd *cobra.Command, query string, opts searchOptions) error {
	root, err := resolveRoot(opts.path)
	if err != nil {
		return err
	}

	cfg, err := loadOrDefaultConfig(root, "")
	if err != nil {
		return err
	}

	cleanup := setupLogging(cfg.IndexDir)
	defer cleanup()

	index, err := openIndex(cfg)
	if err != nil {
		return err
	}

	embedder := newEmbedder(cfg)

	if opts.sync {
		slog.Info("running sync before search")
		if _, err := indexer.UpdateIndex(cmd.Context(), cfg, index, embedder, nil); err != nil {
			return err
		}
	}

	searcher := lsearch.New(index, embedder)
	filter := &lsearch.Filter{
		MinScore:       opts.minScore,
		Extensions:     opts.extensions,
		Languages:      opts.languages,
		PathPattern:    opts.pathPattern,
		ExcludePattern: opts.excludeRegex,
		MaxResults:     opts.maxCount,
	}

	hits, err := searchHits(cmd, searcher, query, opts, filter)
	if err != nil {
		return err
	}

	if opts.json {
		if err := lsearch.FormatJSON(cmd.OutOrStdout(), hits); err != nil {
			return err
		}
	} else {
		lsearch.FormatText(cmd.OutOrStdout(), hits, opts.content)
	}

	if h, err := history.Load(cfg.HistoryPath()); err == nil {
		h.Add(query, time.Now().Unix(), len(hits), filterSummary(opts))
		_ = h.Save()
	}

	return nil
}

func searchHits(cmd *cobra.Command, searcher *lsearch.Searcher, query string, opts searchOptions, filter *lsearch.Filter) ([]store.SearchResult, error) {
	if opts.keyword != "" {
		return searcher.HybridSearch(cmd.Context(), query, opts.keyword, opts.maxCount, filter)
	}
	return searcher.SearchWithFilter(cmd.Context(), query, opts.maxCount, filter)
}

func filterSummary(opts searchOptions) string {
	var parts []string
	if len(opts.extensions) > 0 {
		parts = append(parts, "ext="+strings.Join(opts.extensions, ","))
	}
	if len(opts.languages) > 0 {
		parts = append(parts, "lang="+strings.Join(opts.languages, ","))
	}
	if opts.pathPattern != "" {
		parts = append(parts, "path="+opts.pathPattern)
	}
	if opts.excludeRegex != "" {
		parts = append(parts, "exclude="+opts.excludeRegex)
	}
	if opts.keyword != "" {
		parts = append(parts, "keyword="+opts.keyword)
	}
	if opts.minScore != 0 {
		parts = append(parts, fmt.Sprintf("min_score=%.2f", opts.minScore))
	}
	return strings.Join(parts, " ")
}
