package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReedMe1234/lgrep/internal/config"
	"github.com/ReedMe1234/lgrep/internal/embed"
)

func testEmbedder(model config.Model) embed.Embedder {
	return embed.NewStatic(model)
}

func TestBuildIndexIndexesDiscoveredFiles(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.go"), "package a\n\nfunc A() {}\n")
	writeTestFile(t, filepath.Join(root, "b.go"), "package b\n\nfunc B() {}\n")

	cfg := config.Default(root)
	index, err := BuildIndex(context.Background(), cfg, testEmbedder(cfg.Model), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, index.Metadata().FileCount())
	assert.NotZero(t, index.Metadata().ChunkCount())
	assert.True(t, cfg.Exists())
}

func TestUpdateIndexScenario6ModifyOneFileUnchangedOthers(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.go"), "package a\n")
	writeTestFile(t, filepath.Join(root, "b.go"), "package b\n")
	writeTestFile(t, filepath.Join(root, "c.go"), "package c\n")

	cfg := config.Default(root)
	index, err := BuildIndex(context.Background(), cfg, testEmbedder(cfg.Model), nil)
	require.NoError(t, err)

	writeTestFile(t, filepath.Join(root, "b.go"), "package b\n\nfunc B() {}\n")

	stats, err := UpdateIndex(context.Background(), cfg, index, testEmbedder(cfg.Model), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Added)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 0, stats.Removed)
	assert.Equal(t, 2, stats.Unchanged)
}

func TestUpdateIndexScenario7RemovesDeletedFile(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.go"), "package a\n")
	writeTestFile(t, filepath.Join(root, "b.go"), "package b\n")

	cfg := config.Default(root)
	index, err := BuildIndex(context.Background(), cfg, testEmbedder(cfg.Model), nil)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(root, "b.go")))

	stats, err := UpdateIndex(context.Background(), cfg, index, testEmbedder(cfg.Model), nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, stats.Removed, 1)
	assert.NotContains(t, index.IndexedFiles(), "b.go")

	query := make([]float32, cfg.Model.Dimension())
	query[0] = 1
	results := index.Search(query, 10)
	for _, r := range results {
		assert.NotEqual(t, "b.go", r.Chunk.FilePath)
	}
}

func TestUpdateIndexAddsNewFile(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.go"), "package a\n")

	cfg := config.Default(root)
	index, err := BuildIndex(context.Background(), cfg, testEmbedder(cfg.Model), nil)
	require.NoError(t, err)

	writeTestFile(t, filepath.Join(root, "c.go"), "package c\n")

	stats, err := UpdateIndex(context.Background(), cfg, index, testEmbedder(cfg.Model), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 0, stats.Updated)
	assert.Equal(t, 1, stats.Unchanged)
	assert.Contains(t, index.IndexedFiles(), "c.go")
}

func TestUpdateIndexIsIdempotentWhenNothingChanges(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.go"), "package a\n")

	cfg := config.Default(root)
	index, err := BuildIndex(context.Background(), cfg, testEmbedder(cfg.Model), nil)
	require.NoError(t, err)
	before := index.Metadata().ChunkCount()

	stats, err := UpdateIndex(context.Background(), cfg, index, testEmbedder(cfg.Model), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Added)
	assert.Equal(t, 0, stats.Updated)
	assert.Equal(t, 0, stats.Removed)
	assert.Equal(t, 1, stats.Unchanged)
	assert.Equal(t, before, index.Metadata().ChunkCount())
}

func TestBuildIndexEmptyDirectoryProducesEmptyIndex(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default(root)
	index, err := BuildIndex(context.Background(), cfg, testEmbedder(cfg.Model), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, index.Metadata().ChunkCount())
}
