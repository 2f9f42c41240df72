// Package embed adapts external embedding backends to lgrep's fixed
// Embedder contract: map strings to fixed-dimension float32 vectors.
package embed

import (
	"context"
	"math"
)

// DefaultBatchSize is the slice size used by EmbedBatchWithProgress when the
// Indexer does not override it.
const DefaultBatchSize = 32

// ProgressFunc is invoked after each batch slice completes during
// EmbedBatchWithProgress. It must tolerate being a no-op.
type ProgressFunc func(done, total int)

// Embedder maps text to fixed-dimension vectors.
type Embedder interface {
	// EmbedOne embeds a single string.
	EmbedOne(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds texts, preserving input order. Returns an empty
	// slice for zero input, and never a partial result on failure.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the fixed length of every vector this Embedder
	// produces.
	Dimension() int

	// ModelName returns the stable identifier persisted in IndexMetadata.
	ModelName() string

	// Close releases any underlying resources (model sessions, caches).
	Close() error
}

// EmbedBatchWithProgress embeds texts in consecutive slices of batchSize,
// invoking progress after each slice with the cumulative count processed.
// The concatenation of slice results is returned in input order.
func EmbedBatchWithProgress(ctx context.Context, e Embedder, texts []string, batchSize int, progress ProgressFunc) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	results := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}

		slice, err := e.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		results = append(results, slice...)

		if progress != nil {
			progress(len(results), len(texts))
		}
	}
	return results, nil
}

// l2Normalize scales v in place to unit length. A zero vector is returned
// unchanged.
func l2Normalize(v []float32) []float32 {
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}
	norm := math.Sqrt(sumSquares)
	if norm < 1e-12 {
		return v
	}
	inv := float32(1 / norm)
	for i := range v {
		v[i] *= inv
	}
	return v
}
