// Package indexer discovers project files, chunks and embeds them, and
// keeps a VectorIndex in sync as files change.
package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/ReedMe1234/lgrep/internal/chunk"
	"github.com/ReedMe1234/lgrep/internal/config"
	"github.com/ReedMe1234/lgrep/internal/errors"
	"github.com/ReedMe1234/lgrep/internal/ignore"
)

// DiscoveredFile is one candidate file found under root, along with its
// content and content hash.
type DiscoveredFile struct {
	Path         string // absolute path
	RelativePath string // path relative to root_path
	Content      string
	Hash         string // sha256 of Content, hex-encoded
}

// Discover walks cfg.RootPath and returns every regular file that passes
// ignore rules, the indexable-extension allow-list, and the max-file-size
// limit, with its content read and hashed (spec §4.4). Files that fail to
// decode as UTF-8 are silently dropped.
func Discover(cfg *config.Config) ([]DiscoveredFile, error) {
	root, err := filepath.Abs(cfg.RootPath)
	if err != nil {
		return nil, errors.Wrapf(errors.KindIO, err, "resolve root path %s", cfg.RootPath)
	}

	matcher, err := ignore.New(root)
	if err != nil {
		return nil, errors.Wrapf(errors.KindIO, err, "load ignore rules for %s", root)
	}

	paths, err := candidatePaths(root, matcher, cfg.MaxFileSize)
	if err != nil {
		return nil, errors.Wrapf(errors.KindIO, err, "walk %s", root)
	}

	return readAndHash(root, paths, cfg.Workers), nil
}

// candidatePaths walks root and returns the absolute paths of every file
// worth reading: not excluded, indexable extension, within the size limit.
func candidatePaths(root string, matcher *ignore.Matcher, maxFileSize int64) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}
		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}

		if d.IsDir() {
			if matcher.Excluded(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if matcher.Excluded(relPath) {
			return nil
		}
		if !chunk.IsIndexableExtension(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}
		if info.Size() > maxFileSize {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	return paths, err
}

// readAndHash reads and hashes each path concurrently across workers
// goroutines, dropping files that fail to read or aren't valid UTF-8.
func readAndHash(root string, paths []string, workers int) []DiscoveredFile {
	if workers <= 0 {
		workers = 1
	}

	jobs := make(chan string, len(paths))
	for _, p := range paths {
		jobs <- p
	}
	close(jobs)

	results := make(chan DiscoveredFile, len(paths))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if df, ok := readOne(root, path); ok {
					results <- df
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	files := make([]DiscoveredFile, 0, len(paths))
	for df := range results {
		files = append(files, df)
	}
	return files
}

func readOne(root, path string) (DiscoveredFile, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return DiscoveredFile{}, false
	}
	if !utf8.Valid(content) {
		return DiscoveredFile{}, false
	}
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return DiscoveredFile{}, false
	}

	sum := sha256.Sum256(content)
	return DiscoveredFile{
		Path:         path,
		RelativePath: filepath.ToSlash(relPath),
		Content:      string(content),
		Hash:         hex.EncodeToString(sum[:]),
	}, true
}
