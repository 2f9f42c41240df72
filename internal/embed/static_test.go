package embed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticEmbedderDimension(t *testing.T) {
	e := NewStaticEmbedder(384, "minilm")
	vec, err := e.EmbedOne(context.Background(), "func fooBar(x int) { return x }")
	require.NoError(t, err)
	assert.Len(t, vec, 384)
}

func TestStaticEmbedderDeterministic(t *testing.T) {
	e := NewStaticEmbedder(384, "minilm")
	a, err := e.EmbedOne(context.Background(), "hello world")
	require.NoError(t, err)
	b, err := e.EmbedOne(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestStaticEmbedderEmptyText(t *testing.T) {
	e := NewStaticEmbedder(384, "minilm")
	vec, err := e.EmbedOne(context.Background(), "   ")
	require.NoError(t, err)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestStaticEmbedderBatchPreservesOrder(t *testing.T) {
	e := NewStaticEmbedder(384, "minilm")
	texts := []string{"alpha", "beta", "gamma"}
	vecs, err := e.EmbedBatch(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vecs, 3)

	for i, text := range texts {
		single, err := e.EmbedOne(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, single, vecs[i])
	}
}

func TestStaticEmbedderBatchEmpty(t *testing.T) {
	e := NewStaticEmbedder(384, "minilm")
	vecs, err := e.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vecs)
}

func TestStaticEmbedderClosed(t *testing.T) {
	e := NewStaticEmbedder(384, "minilm")
	require.NoError(t, e.Close())
	_, err := e.EmbedOne(context.Background(), "x")
	assert.Error(t, err)
}

func TestSplitCamelAndSnakeCase(t *testing.T) {
	assert.ElementsMatch(t, []string{"foo", "Bar"}, splitCamelCase("fooBar"))
	assert.ElementsMatch(t, []string{"foo", "bar"}, splitCodeToken("foo_bar"))
}
