package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ReedMe1234/lgrep/internal/chunk"
)

func TestFilterNilMatchesEverything(t *testing.T) {
	var f *Filter
	assert.True(t, f.Matches(chunk.Chunk{}, 0.1))
}

func TestFilterMinScore(t *testing.T) {
	f := &Filter{MinScore: 0.5}
	assert.False(t, f.Matches(chunk.Chunk{}, 0.4))
	assert.True(t, f.Matches(chunk.Chunk{}, 0.5))
}

func TestFilterExtensions(t *testing.T) {
	f := &Filter{Extensions: []string{"go", "py"}}
	assert.True(t, f.Matches(chunk.Chunk{FilePath: "main.go"}, 1))
	assert.False(t, f.Matches(chunk.Chunk{FilePath: "main.rs"}, 1))
	assert.False(t, f.Matches(chunk.Chunk{FilePath: "Makefile"}, 1))
}

func TestFilterLanguages(t *testing.T) {
	f := &Filter{Languages: []string{"go"}}
	assert.True(t, f.Matches(chunk.Chunk{Language: "go"}, 1))
	assert.False(t, f.Matches(chunk.Chunk{Language: "rust"}, 1))
	assert.False(t, f.Matches(chunk.Chunk{Language: ""}, 1))
}

func TestFilterPathPattern(t *testing.T) {
	f := &Filter{PathPattern: `^internal/`}
	assert.True(t, f.Matches(chunk.Chunk{FilePath: "internal/store/vector.go"}, 1))
	assert.False(t, f.Matches(chunk.Chunk{FilePath: "cmd/lgrep/main.go"}, 1))
}

func TestFilterInvalidPathPatternIsNoConstraint(t *testing.T) {
	f := &Filter{PathPattern: `(`}
	assert.True(t, f.Matches(chunk.Chunk{FilePath: "anything.go"}, 1))
}

func TestFilterExcludePattern(t *testing.T) {
	f := &Filter{ExcludePattern: `_test\.go$`}
	assert.False(t, f.Matches(chunk.Chunk{FilePath: "main_test.go"}, 1))
	assert.True(t, f.Matches(chunk.Chunk{FilePath: "main.go"}, 1))
}

func TestFilterInvalidExcludePatternIsNoConstraint(t *testing.T) {
	f := &Filter{ExcludePattern: `(`}
	assert.True(t, f.Matches(chunk.Chunk{FilePath: "anything.go"}, 1))
}
