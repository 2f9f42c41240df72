package indexer

import (
	"context"

	"github.com/ReedMe1234/lgrep/internal/chunk"
	"github.com/ReedMe1234/lgrep/internal/config"
	"github.com/ReedMe1234/lgrep/internal/embed"
	"github.com/ReedMe1234/lgrep/internal/store"
)

// UpdateStats summarizes the outcome of an incremental update (spec §4.4).
type UpdateStats struct {
	Added     int
	Updated   int
	Removed   int
	Unchanged int
}

// BuildIndex creates a fresh VectorIndex over every discovered file under
// cfg.RootPath, saves it, and returns it.
func BuildIndex(ctx context.Context, cfg *config.Config, embedder embed.Embedder, progress embed.ProgressFunc) (*store.VectorIndex, error) {
	files, err := Discover(cfg)
	if err != nil {
		return nil, err
	}

	index := store.New(cfg)
	if err := indexFiles(ctx, index, files, cfg, embedder, progress); err != nil {
		return nil, err
	}
	if err := index.Save(); err != nil {
		return nil, err
	}
	return index, nil
}

// UpdateIndex re-discovers files under cfg.RootPath and reconciles index
// against what it finds: unchanged files are skipped, changed files are
// evicted and re-indexed, new files are indexed, and files no longer on
// disk are removed (spec §4.4).
func UpdateIndex(ctx context.Context, cfg *config.Config, index *store.VectorIndex, embedder embed.Embedder, progress embed.ProgressFunc) (*UpdateStats, error) {
	files, err := Discover(cfg)
	if err != nil {
		return nil, err
	}

	discoveredByPath := make(map[string]DiscoveredFile, len(files))
	for _, f := range files {
		discoveredByPath[f.RelativePath] = f
	}

	stats := &UpdateStats{}
	var toIndex []DiscoveredFile

	storedHashes := index.Metadata().FileHashes
	for _, f := range files {
		stored, ok := storedHashes[f.RelativePath]
		switch {
		case !ok:
			stats.Added++
			toIndex = append(toIndex, f)
		case stored != f.Hash:
			stats.Updated++
			index.RemoveFile(f.RelativePath)
			toIndex = append(toIndex, f)
		default:
			stats.Unchanged++
		}
	}

	for _, indexed := range index.IndexedFiles() {
		if _, ok := discoveredByPath[indexed]; !ok {
			index.RemoveFile(indexed)
			stats.Removed++
		}
	}

	if err := indexFiles(ctx, index, toIndex, cfg, embedder, progress); err != nil {
		return nil, err
	}
	if err := index.Save(); err != nil {
		return nil, err
	}
	return stats, nil
}

// indexFiles chunks every file in files starting from index.NextID(),
// embeds the resulting chunk texts in slices of 32, and adds them to
// index. A no-op if files is empty.
func indexFiles(ctx context.Context, index *store.VectorIndex, files []DiscoveredFile, cfg *config.Config, embedder embed.Embedder, progress embed.ProgressFunc) error {
	if len(files) == 0 {
		return nil
	}

	chunker := chunk.New(cfg.ChunkSize, cfg.ChunkOverlap)

	var chunks []chunk.Chunk
	nextID := index.NextID()
	for _, f := range files {
		produced := chunker.Chunk(f.Content, f.RelativePath, f.Hash, nextID)
		chunks = append(chunks, produced...)
		nextID += uint64(len(produced))
	}

	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	embeddings, err := embed.EmbedBatchWithProgress(ctx, embedder, texts, embed.DefaultBatchSize, progress)
	if err != nil {
		return err
	}

	return index.AddChunks(chunks, embeddings)
}
