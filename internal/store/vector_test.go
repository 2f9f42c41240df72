package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReedMe1234/lgrep/internal/chunk"
	"github.com/ReedMe1234/lgrep/internal/config"
	"github.com/ReedMe1234/lgrep/internal/errors"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	cfg := config.Default(dir)
	cfg.Model = config.ModelMiniLM
	return cfg
}

func unitVector(dim int, seed float32) []float32 {
	v := make([]float32, dim)
	v[0] = seed
	v[1] = 1
	return v
}

func TestAddChunksAndSearch(t *testing.T) {
	cfg := testConfig(t)
	idx := New(cfg)

	chunks := []chunk.Chunk{
		{ID: 0, Text: "a", FilePath: "a.go", FileHash: "h1"},
		{ID: 1, Text: "b", FilePath: "b.go", FileHash: "h2"},
	}
	embeddings := [][]float32{
		unitVector(cfg.Model.Dimension(), 1),
		unitVector(cfg.Model.Dimension(), 2),
	}

	require.NoError(t, idx.AddChunks(chunks, embeddings))
	assert.Equal(t, uint64(2), idx.NextID())
	assert.Equal(t, 2, idx.Metadata().ChunkCount())

	results := idx.Search(unitVector(cfg.Model.Dimension(), 1), 2)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, float32(-1))
		assert.LessOrEqual(t, r.Score, float32(1))
	}
}

func TestAddChunksLengthMismatch(t *testing.T) {
	cfg := testConfig(t)
	idx := New(cfg)
	err := idx.AddChunks([]chunk.Chunk{{ID: 0}}, nil)
	assert.Error(t, err)
}

func TestSearchEmptyIndex(t *testing.T) {
	cfg := testConfig(t)
	idx := New(cfg)
	results := idx.Search(unitVector(cfg.Model.Dimension(), 1), 5)
	assert.Empty(t, results)
}

func TestRemoveFile(t *testing.T) {
	cfg := testConfig(t)
	idx := New(cfg)

	chunks := []chunk.Chunk{
		{ID: 0, FilePath: "a.go", FileHash: "h1"},
		{ID: 1, FilePath: "a.go", FileHash: "h1"},
		{ID: 2, FilePath: "b.go", FileHash: "h2"},
	}
	embeddings := make([][]float32, 3)
	for i := range embeddings {
		embeddings[i] = unitVector(cfg.Model.Dimension(), float32(i+1))
	}
	require.NoError(t, idx.AddChunks(chunks, embeddings))

	removed := idx.RemoveFile("a.go")
	assert.ElementsMatch(t, []uint64{0, 1}, removed)
	assert.Equal(t, 1, idx.Metadata().ChunkCount())
	assert.NotContains(t, idx.IndexedFiles(), "a.go")
}

func TestRemoveFileMissingIsNoop(t *testing.T) {
	cfg := testConfig(t)
	idx := New(cfg)
	removed := idx.RemoveFile("nonexistent.go")
	assert.Empty(t, removed)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	idx := New(cfg)

	chunks := []chunk.Chunk{
		{ID: 0, FilePath: "a.go", FileHash: "h1", Text: "hello"},
		{ID: 1, FilePath: "b.go", FileHash: "h2", Text: "world"},
	}
	embeddings := []([]float32){
		unitVector(cfg.Model.Dimension(), 1),
		unitVector(cfg.Model.Dimension(), 2),
	}
	require.NoError(t, idx.AddChunks(chunks, embeddings))
	require.NoError(t, idx.Save())

	loaded, err := Load(cfg)
	require.NoError(t, err)

	assert.Equal(t, idx.Metadata().ChunkCount(), loaded.Metadata().ChunkCount())
	assert.Equal(t, idx.Metadata().FileCount(), loaded.Metadata().FileCount())
	assert.Equal(t, idx.NextID(), loaded.NextID())

	query := unitVector(cfg.Model.Dimension(), 1)
	originalResults := idx.Search(query, 2)
	loadedResults := loaded.Search(query, 2)
	require.Len(t, loadedResults, len(originalResults))
	for i := range originalResults {
		assert.Equal(t, originalResults[i].Chunk.ID, loadedResults[i].Chunk.ID)
		assert.InDelta(t, originalResults[i].Score, loadedResults[i].Score, 1e-4)
	}
}

func TestLoadMissingIsNoIndex(t *testing.T) {
	cfg := testConfig(t)
	_, err := Load(cfg)
	require.Error(t, err)
	assert.True(t, errors.IsNoIndex(err))
}

func TestNextIDInvariant(t *testing.T) {
	cfg := testConfig(t)
	idx := New(cfg)
	chunks := []chunk.Chunk{{ID: 5, FilePath: "a.go", FileHash: "h"}, {ID: 7, FilePath: "a.go", FileHash: "h"}}
	embeddings := [][]float32{unitVector(cfg.Model.Dimension(), 1), unitVector(cfg.Model.Dimension(), 2)}
	require.NoError(t, idx.AddChunks(chunks, embeddings))
	assert.Equal(t, uint64(8), idx.NextID())
}
