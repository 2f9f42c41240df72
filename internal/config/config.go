// Package config defines lgrep's index directory layout and the
// persisted per-index configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ReedMe1234/lgrep/internal/errors"
)

// IndexDirName is the default directory name holding a project's index.
const IndexDirName = ".lgrep"

const (
	vectorsFile  = "vectors.usearch"
	metadataFile = "metadata.bin"
	configFile   = "config.json"
	historyFile  = "history.json"
)

// Config is the persisted configuration for one index, written to
// <index_dir>/config.json.
type Config struct {
	RootPath     string `json:"root_path"`
	IndexDir     string `json:"index_dir"`
	Model        Model  `json:"model"`
	ChunkSize    int    `json:"chunk_size"`
	ChunkOverlap int    `json:"chunk_overlap"`
	MaxFileSize  int64  `json:"max_file_size"`
	Workers      int    `json:"workers"`
}

// Default returns the default configuration for indexing rootPath.
func Default(rootPath string) *Config {
	return &Config{
		RootPath:     rootPath,
		IndexDir:     filepath.Join(rootPath, IndexDirName),
		Model:        DefaultModel,
		ChunkSize:    1500,
		ChunkOverlap: 200,
		MaxFileSize:  1 << 20, // 1 MiB
		Workers:      runtime.NumCPU(),
	}
}

// VectorsPath returns the path to the ANN payload file.
func (c *Config) VectorsPath() string {
	return filepath.Join(c.IndexDir, vectorsFile)
}

// MetadataPath returns the path to the IndexMetadata binary file.
func (c *Config) MetadataPath() string {
	return filepath.Join(c.IndexDir, metadataFile)
}

// ConfigPath returns the path to this config's own JSON file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.IndexDir, configFile)
}

// HistoryPath returns the path to the query history file.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.IndexDir, historyFile)
}

// Exists reports whether an index directory with both required files is
// present.
func (c *Config) Exists() bool {
	if _, err := os.Stat(c.VectorsPath()); err != nil {
		return false
	}
	if _, err := os.Stat(c.MetadataPath()); err != nil {
		return false
	}
	return true
}

// Save writes config.json, creating the index directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.IndexDir, 0o755); err != nil {
		return errors.Wrapf(errors.KindIO, err, "create index directory %s", c.IndexDir)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(errors.KindJSON, err)
	}

	if err := os.WriteFile(c.ConfigPath(), data, 0o644); err != nil {
		return errors.Wrapf(errors.KindIO, err, "write %s", c.ConfigPath())
	}
	return nil
}

// Load reads config.json from indexDir. Returns KindNoIndex if it is
// missing.
func Load(indexDir string) (*Config, error) {
	path := filepath.Join(indexDir, configFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.KindNoIndex, "no index found at %s; run 'lgrep index' first", indexDir)
		}
		return nil, errors.Wrapf(errors.KindIO, err, "read %s", path)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(errors.KindJSON, err, "parse %s", path)
	}
	return &cfg, nil
}

// Validate checks that c's fields are internally consistent.
func (c *Config) Validate() error {
	if !c.Model.Valid() {
		return errors.New(errors.KindConfig, "unknown model %q", c.Model)
	}
	if c.ChunkSize <= 0 {
		return errors.New(errors.KindConfig, "chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return errors.New(errors.KindConfig, "chunk_overlap must be non-negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return errors.New(errors.KindConfig, "chunk_overlap (%d) must be less than chunk_size (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.MaxFileSize <= 0 {
		return errors.New(errors.KindConfig, "max_file_size must be positive, got %d", c.MaxFileSize)
	}
	if c.Workers <= 0 {
		return errors.New(errors.KindConfig, "workers must be positive, got %d", c.Workers)
	}
	return nil
}

// String implements fmt.Stringer for debug logging.
func (c *Config) String() string {
	return fmt.Sprintf("Config{root=%s model=%s chunk_size=%d overlap=%d workers=%d}",
		c.RootPath, c.Model, c.ChunkSize, c.ChunkOverlap, c.Workers)
}
