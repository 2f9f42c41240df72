// Package store implements the persistent ANN vector index and its sidecar
// metadata.
package store

import (
	"encoding/gob"
	"os"

	"github.com/ReedMe1234/lgrep/internal/chunk"
	"github.com/ReedMe1234/lgrep/internal/errors"
)

// IndexMetadata is the sidecar to the vector store: everything needed to
// interpret and rebuild the ANN graph's keys.
//
// Field order matches the wire format every producer/consumer must agree
// on: chunks, file_hashes, next_id, model_name, dimension.
type IndexMetadata struct {
	Chunks     []chunk.Chunk
	FileHashes map[string]string
	NextID     uint64
	ModelName  string
	Dimension  int
}

// NewMetadata creates empty IndexMetadata for the given model.
func NewMetadata(modelName string, dimension int) *IndexMetadata {
	return &IndexMetadata{
		Chunks:     nil,
		FileHashes: make(map[string]string),
		NextID:     0,
		ModelName:  modelName,
		Dimension:  dimension,
	}
}

// ChunkCount returns the number of chunks currently tracked.
func (m *IndexMetadata) ChunkCount() int {
	return len(m.Chunks)
}

// FileCount returns the number of distinct indexed files.
func (m *IndexMetadata) FileCount() int {
	return len(m.FileHashes)
}

// IndexedFiles returns every file path currently tracked.
func (m *IndexMetadata) IndexedFiles() []string {
	paths := make([]string, 0, len(m.FileHashes))
	for p := range m.FileHashes {
		paths = append(paths, p)
	}
	return paths
}

// saveGob gob-encodes m to path.
func (m *IndexMetadata) saveGob(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.KindIO, err, "create %s", path)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(m); err != nil {
		return errors.Wrap(errors.KindSerialization, err)
	}
	return nil
}

// loadMetadata gob-decodes IndexMetadata from path.
func loadMetadata(path string) (*IndexMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.KindIO, err, "open %s", path)
	}
	defer f.Close()

	var m IndexMetadata
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, errors.Wrap(errors.KindSerialization, err)
	}
	if m.FileHashes == nil {
		m.FileHashes = make(map[string]string)
	}
	return &m, nil
}
