package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveModelAliases(t *testing.T) {
	cases := map[string]Model{
		"minilm":                          ModelMiniLM,
		"ALL-MiniLM-L6-v2":                ModelMiniLM,
		"bge-small":                       ModelBGESmall,
		"BAAI/bge-small-en-v1.5":          ModelBGESmall,
		"nomic-embed":                     ModelNomicEmbed,
		"nomic-ai/nomic-embed-text-v1":    ModelNomicEmbed,
		"multilingual-e5-small":           ModelMultilingualE5Small,
		"intfloat/multilingual-e5-small":  ModelMultilingualE5Small,
	}
	for tag, want := range cases {
		got, ok := ResolveModel(tag)
		assert.True(t, ok, tag)
		assert.Equal(t, want, got, tag)
	}
}

func TestResolveModelUnknown(t *testing.T) {
	_, ok := ResolveModel("gpt-4")
	assert.False(t, ok)
}

func TestModelDimensions(t *testing.T) {
	assert.Equal(t, 384, ModelMiniLM.Dimension())
	assert.Equal(t, 384, ModelBGESmall.Dimension())
	assert.Equal(t, 768, ModelNomicEmbed.Dimension())
	assert.Equal(t, 384, ModelMultilingualE5Small.Dimension())
}

func TestModelsListIsComplete(t *testing.T) {
	assert.Len(t, Models(), 4)
	for _, m := range Models() {
		assert.True(t, m.Valid())
	}
}
