package config

import "strings"

// Model is one of the fixed set of supported embedding models.
type Model string

const (
	ModelMiniLM              Model = "minilm"
	ModelBGESmall            Model = "bge-small"
	ModelNomicEmbed          Model = "nomic-embed"
	ModelMultilingualE5Small Model = "multilingual-e5-small"
)

// modelDimensions is the fixed dimensionality of each enumerated model.
var modelDimensions = map[Model]int{
	ModelMiniLM:              384,
	ModelBGESmall:            384,
	ModelNomicEmbed:          768,
	ModelMultilingualE5Small: 384,
}

// modelAliases maps accepted aliases (short tag, long tag, full HF
// identifier) to the canonical Model tag.
var modelAliases = map[string]Model{
	"minilm":                          ModelMiniLM,
	"all-minilm":                      ModelMiniLM,
	"all-minilm-l6-v2":                ModelMiniLM,
	"sentence-transformers/all-minilm-l6-v2": ModelMiniLM,

	"bge-small":             ModelBGESmall,
	"bge-small-en":          ModelBGESmall,
	"bge-small-en-v1.5":     ModelBGESmall,
	"baai/bge-small-en-v1.5": ModelBGESmall,

	"nomic-embed":         ModelNomicEmbed,
	"nomic-embed-text":    ModelNomicEmbed,
	"nomic-embed-text-v1": ModelNomicEmbed,
	"nomic-ai/nomic-embed-text-v1": ModelNomicEmbed,

	"multilingual-e5-small":          ModelMultilingualE5Small,
	"e5-small":                       ModelMultilingualE5Small,
	"intfloat/multilingual-e5-small": ModelMultilingualE5Small,
}

// DefaultModel is used when no model is specified.
const DefaultModel = ModelMiniLM

// ResolveModel resolves a user-supplied tag (short tag, long tag, or full HF
// identifier) to a canonical Model. Resolution is case-insensitive.
func ResolveModel(tag string) (Model, bool) {
	m, ok := modelAliases[strings.ToLower(strings.TrimSpace(tag))]
	return m, ok
}

// Dimension returns m's fixed embedding dimension.
func (m Model) Dimension() int {
	return modelDimensions[m]
}

// Valid reports whether m is one of the enumerated models.
func (m Model) Valid() bool {
	_, ok := modelDimensions[m]
	return ok
}

// String returns m's canonical tag.
func (m Model) String() string {
	return string(m)
}

// Models lists all enumerated models in a stable order.
func Models() []Model {
	return []Model{ModelMiniLM, ModelBGESmall, ModelNomicEmbed, ModelMultilingualE5Small}
}
