package store

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"

	"github.com/coder/hnsw"
	"github.com/gofrs/flock"

	"github.com/ReedMe1234/lgrep/internal/chunk"
	"github.com/ReedMe1234/lgrep/internal/config"
	"github.com/ReedMe1234/lgrep/internal/errors"
)

// HNSW construction parameters, fixed per spec §4.3.
const (
	connectivity    = 16
	expansionAdd    = 128
	expansionSearch = 64
)

// SearchResult pairs a Chunk with its cosine similarity score.
type SearchResult struct {
	Chunk chunk.Chunk
	Score float32
}

// VectorIndex is the persistent ANN store keyed directly by chunk id, plus
// the IndexMetadata sidecar. Not safe for concurrent use; callers (the
// Watcher in particular) must serialize access with their own mutex.
type VectorIndex struct {
	cfg      *config.Config
	graph    *hnsw.Graph[uint64]
	metadata *IndexMetadata
	lock     *flock.Flock
}

// New builds an empty VectorIndex parameterized by the configured model's
// dimension and cosine distance.
func New(cfg *config.Config) *VectorIndex {
	graph := hnsw.NewGraph[uint64]()
	graph.Distance = hnsw.CosineDistance
	graph.M = connectivity
	graph.EfSearch = expansionSearch
	_ = expansionAdd // coder/hnsw has no separate add-time expansion knob; kept as a named constant for parity with spec §4.3's parameter list

	return &VectorIndex{
		cfg:      cfg,
		graph:    graph,
		metadata: NewMetadata(string(cfg.Model), cfg.Model.Dimension()),
	}
}

// AddChunks inserts chunks and their embeddings as a batch. Fails if the
// slice lengths disagree.
func (v *VectorIndex) AddChunks(chunks []chunk.Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return errors.New(errors.KindIndex, "chunks/embeddings length mismatch: %d vs %d", len(chunks), len(embeddings))
	}
	if len(chunks) == 0 {
		return nil
	}

	var maxID uint64
	for i, c := range chunks {
		node := hnsw.MakeNode(c.ID, embeddings[i])
		v.graph.Add(node)

		v.metadata.Chunks = append(v.metadata.Chunks, c)
		v.metadata.FileHashes[c.FilePath] = c.FileHash

		if c.ID > maxID {
			maxID = c.ID
		}
	}

	if maxID+1 > v.metadata.NextID {
		v.metadata.NextID = maxID + 1
	}
	return nil
}

// RemoveFile removes every chunk (and its vector) belonging to filePath,
// returning the removed ids.
func (v *VectorIndex) RemoveFile(filePath string) []uint64 {
	var removed []uint64
	var kept []chunk.Chunk

	for _, c := range v.metadata.Chunks {
		if c.FilePath == filePath {
			removed = append(removed, c.ID)
			continue
		}
		kept = append(kept, c)
	}

	for _, id := range removed {
		v.graph.Delete(id)
	}

	v.metadata.Chunks = kept
	delete(v.metadata.FileHashes, filePath)
	return removed
}

// Search returns up to topK nearest neighbors to queryVector by descending
// cosine score. Returns an empty slice if the index is empty.
func (v *VectorIndex) Search(queryVector []float32, topK int) []SearchResult {
	if v.graph.Len() == 0 {
		return nil
	}

	chunksByID := make(map[uint64]chunk.Chunk, len(v.metadata.Chunks))
	for _, c := range v.metadata.Chunks {
		chunksByID[c.ID] = c
	}

	neighbors := v.graph.Search(queryVector, topK)

	results := make([]SearchResult, 0, len(neighbors))
	for _, n := range neighbors {
		c, ok := chunksByID[n.Key]
		if !ok {
			continue
		}
		d := v.graph.Distance(queryVector, n.Value)
		results = append(results, SearchResult{Chunk: c, Score: 1 - d})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}

// Metadata exposes the sidecar metadata.
func (v *VectorIndex) Metadata() *IndexMetadata {
	return v.metadata
}

// NextID returns the id that will be assigned to the next chunk.
func (v *VectorIndex) NextID() uint64 {
	return v.metadata.NextID
}

// IndexedFiles returns every file path currently tracked.
func (v *VectorIndex) IndexedFiles() []string {
	return v.metadata.IndexedFiles()
}

// Save acquires an advisory lock on the index directory and writes
// vectors.usearch, metadata.bin, and config.json.
func (v *VectorIndex) Save() error {
	if err := os.MkdirAll(v.cfg.IndexDir, 0o755); err != nil {
		return errors.Wrapf(errors.KindIO, err, "create index directory %s", v.cfg.IndexDir)
	}

	lockPath := filepath.Join(v.cfg.IndexDir, ".lock")
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return errors.Wrapf(errors.KindIndex, err, "lock index directory")
	}
	if !locked {
		return errors.New(errors.KindIndex, "index directory %s is locked by another process", v.cfg.IndexDir)
	}
	defer lock.Unlock()

	vf, err := os.Create(v.cfg.VectorsPath())
	if err != nil {
		return errors.Wrapf(errors.KindIO, err, "create %s", v.cfg.VectorsPath())
	}
	if err := v.graph.Export(vf); err != nil {
		vf.Close()
		return errors.Wrap(errors.KindSerialization, err)
	}
	if err := vf.Close(); err != nil {
		return errors.Wrapf(errors.KindIO, err, "close %s", v.cfg.VectorsPath())
	}

	if err := v.metadata.saveGob(v.cfg.MetadataPath()); err != nil {
		return err
	}

	return v.cfg.Save()
}

// Load reads vectors.usearch and metadata.bin from cfg.IndexDir. Returns a
// KindNoIndex error if either file is missing.
func Load(cfg *config.Config) (*VectorIndex, error) {
	if !cfg.Exists() {
		return nil, errors.New(errors.KindNoIndex, "no index found at %s; run 'lgrep index' first", cfg.IndexDir)
	}

	metadata, err := loadMetadata(cfg.MetadataPath())
	if err != nil {
		return nil, err
	}

	graph := hnsw.NewGraph[uint64]()
	graph.Distance = hnsw.CosineDistance
	graph.M = connectivity
	graph.EfSearch = expansionSearch

	vf, err := os.Open(cfg.VectorsPath())
	if err != nil {
		return nil, errors.Wrapf(errors.KindIO, err, "open %s", cfg.VectorsPath())
	}
	defer vf.Close()

	if err := graph.Import(bufio.NewReader(vf)); err != nil {
		return nil, errors.Wrap(errors.KindSerialization, err)
	}

	return &VectorIndex{cfg: cfg, graph: graph, metadata: metadata}, nil
}
