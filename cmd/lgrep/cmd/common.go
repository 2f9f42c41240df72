package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ReedMe1234/lgrep/internal/config"
	"github.com/ReedMe1234/lgrep/internal/embed"
	"github.com/ReedMe1234/lgrep/internal/errors"
	"github.com/ReedMe1234/lgrep/internal/logging"
	"github.com/ReedMe1234/lgrep/internal/store"
)

// resolveRoot returns the absolute path for a user-supplied root argument,
// defaulting to the current directory when path is empty.
func resolveRoot(path string) (string, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(errors.KindInvalidPath, err, "resolve %s", path)
	}
	return abs, nil
}

// loadOrDefaultConfig loads the persisted config for root, falling back to
// config.Default(root) when no index has been built yet. modelTag, when
// non-empty, overrides the loaded or default model.
func loadOrDefaultConfig(root, modelTag string) (*config.Config, error) {
	cfg, err := config.Load(filepath.Join(root, config.IndexDirName))
	if err != nil {
		if errors.IsNoIndex(err) {
			cfg = config.Default(root)
		} else {
			return nil, err
		}
	}

	if modelTag != "" {
		model, ok := config.ResolveModel(modelTag)
		if !ok {
			return nil, errors.New(errors.KindConfig, "unknown model %q", modelTag)
		}
		cfg.Model = model
	}
	return cfg, nil
}

// openIndex loads the persistent vector index for cfg, translating a
// missing index into the distinguished "run index first" message (spec §7).
func openIndex(cfg *config.Config) (*store.VectorIndex, error) {
	index, err := store.Load(cfg)
	if err != nil {
		if errors.IsNoIndex(err) {
			return nil, errors.New(errors.KindNoIndex, "no index found at %s; run 'lgrep index' first", cfg.IndexDir)
		}
		return nil, err
	}
	return index, nil
}

// setupLogging wires JSON logging to <indexDir>/lgrep.log and installs it
// as the slog default. Failure to set up logging is non-fatal.
func setupLogging(indexDir string) func() {
	logger, cleanup, err := logging.Setup(logging.DefaultConfig(indexDir))
	if err != nil {
		return func() {}
	}
	slog.SetDefault(logger)
	return cleanup
}

// newEmbedder resolves an Embedder for cfg.Model, preferring ONNX assets
// under the index's models directory and falling back to static embeddings.
func newEmbedder(cfg *config.Config) embed.Embedder {
	modelsDir := embed.DefaultModelsDir(cfg.IndexDir)
	return embed.New(slog.Default(), modelsDir, cfg.Model)
}

// envString returns the value of key, or def if unset.
func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// envBool returns the value of key parsed as a bool, or def if unset or
// unparsable.
func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// envInt returns the value of key parsed as an int, or def if unset or
// unparsable.
func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// userFacingError formats err for display. A NoIndex error, which already
// carries the distinguished "run index first" message, is shown as is; any
// other error is prefixed with "error: ".
func userFacingError(err error) string {
	if errors.IsNoIndex(err) {
		return err.Error()
	}
	return fmt.Sprintf("error: %s", err.Error())
}
