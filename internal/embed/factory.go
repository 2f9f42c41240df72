package embed

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ReedMe1234/lgrep/internal/config"
)

// EnvDisableCache, when set to "1", "true", or "off", disables the LRU
// embedding cache (mirrors how the rest of lgrep reads LGREP_* env vars).
const EnvDisableCache = "LGREP_EMBED_CACHE"

// New resolves model to a concrete Embedder: an ONNXEmbedder backed by
// assets under modelsDir/<model>/, falling back to StaticEmbedder with a
// logged warning when those assets are absent (e.g. offline, tests). The
// result is wrapped in a CachedEmbedder unless explicitly disabled.
func New(logger *slog.Logger, modelsDir string, model config.Model) Embedder {
	dir := filepath.Join(modelsDir, string(model))
	var embedder Embedder = NewWithFallback(logger, dir, string(model), model.Dimension())

	if !cacheDisabled() {
		embedder = NewCachedEmbedder(embedder, DefaultCacheSize)
	}
	return embedder
}

// NewStatic constructs a StaticEmbedder directly for model, bypassing ONNX
// entirely. Used by tests that don't want model assets on disk.
func NewStatic(model config.Model) Embedder {
	return NewStaticEmbedder(model.Dimension(), string(model))
}

func cacheDisabled() bool {
	switch os.Getenv(EnvDisableCache) {
	case "1", "true", "off", "disabled":
		return true
	default:
		return false
	}
}

// DefaultModelsDir returns "<indexDir>/models", the conventional location
// models are downloaded or vendored into.
func DefaultModelsDir(indexDir string) string {
	return filepath.Join(indexDir, "models")
}
