// Package search embeds queries and ranks chunks from a VectorIndex,
// applying Filter constraints and optional keyword gating.
package search

import (
	"context"
	"regexp"

	"github.com/ReedMe1234/lgrep/internal/embed"
	"github.com/ReedMe1234/lgrep/internal/errors"
	"github.com/ReedMe1234/lgrep/internal/store"
)

// oversampleFactor is the over-fetch multiplier applied to top_k before
// filtering, per spec §4.5's recommendation of >= 4x.
const oversampleFactor = 4

// Searcher embeds queries and retrieves ranked chunks from a VectorIndex.
type Searcher struct {
	index    *store.VectorIndex
	embedder embed.Embedder
}

// New builds a Searcher over index using embedder for query embedding.
func New(index *store.VectorIndex, embedder embed.Embedder) *Searcher {
	return &Searcher{index: index, embedder: embedder}
}

// Search embeds query and returns the topK nearest chunks with no filtering.
func (s *Searcher) Search(ctx context.Context, query string, topK int) ([]store.SearchResult, error) {
	vec, err := s.embedder.EmbedOne(ctx, query)
	if err != nil {
		return nil, errors.Wrap(errors.KindEmbedding, err)
	}
	return s.index.Search(vec, topK), nil
}

// SearchWithFilter over-fetches K' = max(topK*oversampleFactor, topK)
// candidates, applies filter to each, and truncates to topK (or
// filter.MaxResults, when set, which overrides topK as the final cap).
func (s *Searcher) SearchWithFilter(ctx context.Context, query string, topK int, filter *Filter) ([]store.SearchResult, error) {
	vec, err := s.embedder.EmbedOne(ctx, query)
	if err != nil {
		return nil, errors.Wrap(errors.KindEmbedding, err)
	}

	fetchK := topK * oversampleFactor
	if fetchK < topK {
		fetchK = topK
	}

	candidates := s.index.Search(vec, fetchK)

	cap := topK
	if filter != nil && filter.MaxResults > 0 {
		cap = filter.MaxResults
	}

	results := make([]store.SearchResult, 0, cap)
	for _, c := range candidates {
		if len(results) >= cap {
			break
		}
		if filter.Matches(c.Chunk, c.Score) {
			results = append(results, c)
		}
	}
	return results, nil
}

// HybridSearch is SearchWithFilter followed by a hard keyword-regex gate
// over chunk text. The regex is not a rank contributor; an invalid regex
// is an error, not a silently dropped filter (spec §4.5, §9 re-design).
func (s *Searcher) HybridSearch(ctx context.Context, query, keywordRegex string, topK int, filter *Filter) ([]store.SearchResult, error) {
	re, err := regexp.Compile(keywordRegex)
	if err != nil {
		return nil, errors.Wrapf(errors.KindInvalidPath, err, "invalid keyword regex %q", keywordRegex)
	}

	filtered, err := s.SearchWithFilter(ctx, query, topK, filter)
	if err != nil {
		return nil, err
	}

	results := make([]store.SearchResult, 0, len(filtered))
	for _, r := range filtered {
		if re.MatchString(r.Chunk.Text) {
			results = append(results, r)
		}
	}
	return results, nil
}
