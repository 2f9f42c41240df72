package embed

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/daulet/tokenizers"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/ReedMe1234/lgrep/internal/errors"
)

// maxSeqLen bounds tokenized input length; inference cost grows with its
// square, and code chunks rarely need more.
const maxSeqLen = 256

// ONNXEmbedder runs a local sentence-transformer model (minilm, bge-small,
// nomic-embed, or multilingual-e5-small) via ONNX Runtime, pooling the
// [CLS] token and L2-normalizing the result.
type ONNXEmbedder struct {
	session   *ort.DynamicAdvancedSession
	tokenizer *tokenizers.Tokenizer
	dimension int
	model     string
	batchSize int
}

// NewONNXEmbedder loads model.onnx and tokenizer.json from modelDir. Returns
// an error (not a fallback) if either asset is missing or fails to load;
// callers that want a graceful fallback should catch this and construct a
// StaticEmbedder instead, logging a warning.
func NewONNXEmbedder(modelDir, modelName string, dimension int) (*ONNXEmbedder, error) {
	modelPath := filepath.Join(modelDir, "model.onnx")
	tokenPath := filepath.Join(modelDir, "tokenizer.json")

	if _, err := os.Stat(modelPath); err != nil {
		return nil, errors.New(errors.KindEmbedding, "model assets not found at %s", modelPath)
	}
	if _, err := os.Stat(tokenPath); err != nil {
		return nil, errors.New(errors.KindEmbedding, "tokenizer not found at %s", tokenPath)
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return nil, errors.Wrap(errors.KindEmbedding, err)
	}

	numThreads := runtime.NumCPU()
	if numThreads > 4 {
		numThreads = 4
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, errors.Wrap(errors.KindEmbedding, err)
	}
	defer opts.Destroy()

	if err := opts.SetIntraOpNumThreads(numThreads); err != nil {
		return nil, errors.Wrap(errors.KindEmbedding, err)
	}
	if err := opts.SetInterOpNumThreads(1); err != nil {
		return nil, errors.Wrap(errors.KindEmbedding, err)
	}

	inputNames := []string{"input_ids", "attention_mask", "token_type_ids"}
	outputNames := []string{"last_hidden_state"}

	session, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, outputNames, opts)
	if err != nil {
		return nil, errors.Wrapf(errors.KindEmbedding, err, "create onnx session")
	}

	tk, err := tokenizers.FromFile(tokenPath)
	if err != nil {
		session.Destroy()
		return nil, errors.Wrapf(errors.KindEmbedding, err, "load tokenizer")
	}

	return &ONNXEmbedder{
		session:   session,
		tokenizer: tk,
		dimension: dimension,
		model:     modelName,
		batchSize: 8,
	}, nil
}

func (e *ONNXEmbedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (e *ONNXEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	results := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += e.batchSize {
		end := i + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := e.runBatch(texts[i:end])
		if err != nil {
			return nil, errors.Wrapf(errors.KindEmbedding, err, "batch [%d:%d]", i, end)
		}
		results = append(results, batch...)
	}
	return results, nil
}

func (e *ONNXEmbedder) Dimension() int    { return e.dimension }
func (e *ONNXEmbedder) ModelName() string { return e.model }

func (e *ONNXEmbedder) Close() error {
	if e.session != nil {
		e.session.Destroy()
	}
	if e.tokenizer != nil {
		e.tokenizer.Close()
	}
	return nil
}

func (e *ONNXEmbedder) runBatch(texts []string) ([][]float32, error) {
	batchSize := len(texts)

	type encoded struct {
		ids  []int64
		mask []int64
	}

	all := make([]encoded, batchSize)
	maxLen := 0
	for i, text := range texts {
		enc := e.tokenizer.EncodeWithOptions(text, true, tokenizers.WithReturnAttentionMask())
		ids := enc.IDs
		if len(ids) > maxSeqLen {
			ids = ids[:maxSeqLen]
		}
		ids64 := make([]int64, len(ids))
		mask64 := make([]int64, len(ids))
		for j, v := range ids {
			ids64[j] = int64(v)
			mask64[j] = 1
		}
		if len(enc.AttentionMask) >= len(ids) {
			for j := range ids64 {
				mask64[j] = int64(enc.AttentionMask[j])
			}
		}
		all[i] = encoded{ids: ids64, mask: mask64}
		if len(ids64) > maxLen {
			maxLen = len(ids64)
		}
	}
	if maxLen == 0 {
		return nil, errors.New(errors.KindEmbedding, "all texts tokenized to zero length")
	}

	flatIDs := make([]int64, batchSize*maxLen)
	flatMask := make([]int64, batchSize*maxLen)
	flatType := make([]int64, batchSize*maxLen)
	for i, enc := range all {
		copy(flatIDs[i*maxLen:], enc.ids)
		copy(flatMask[i*maxLen:], enc.mask)
	}
	shape := ort.NewShape(int64(batchSize), int64(maxLen))

	inputIDs, err := ort.NewTensor(shape, flatIDs)
	if err != nil {
		return nil, err
	}
	defer inputIDs.Destroy()

	attnMask, err := ort.NewTensor(shape, flatMask)
	if err != nil {
		return nil, err
	}
	defer attnMask.Destroy()

	typeIDs, err := ort.NewTensor(shape, flatType)
	if err != nil {
		return nil, err
	}
	defer typeIDs.Destroy()

	outputs := []ort.Value{nil}
	if err := e.session.Run([]ort.Value{inputIDs, attnMask, typeIDs}, outputs); err != nil {
		return nil, err
	}
	defer func() {
		if outputs[0] != nil {
			outputs[0].Destroy()
		}
	}()

	hiddenTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, errors.New(errors.KindEmbedding, "unexpected onnx output type")
	}
	hidden := hiddenTensor.GetData()
	seqLen := int(hiddenTensor.GetShape()[1])

	if shape := hiddenTensor.GetShape(); len(shape) < 3 || int(shape[2]) != e.dimension {
		return nil, errors.New(errors.KindEmbedding, "model output shape %v does not match configured dimension %d", shape, e.dimension)
	}

	embeddings := make([][]float32, batchSize)
	for i := 0; i < batchSize; i++ {
		vec := make([]float32, e.dimension)
		base := i * seqLen * e.dimension
		for d := 0; d < e.dimension; d++ {
			vec[d] = hidden[base+d]
		}
		embeddings[i] = l2Normalize(vec)
	}
	return embeddings, nil
}

// NewWithFallback loads an ONNXEmbedder from modelDir, falling back to a
// StaticEmbedder with a logged warning if the model assets are absent or
// fail to load (spec §4.2's offline behavior).
func NewWithFallback(logger *slog.Logger, modelDir, modelName string, dimension int) Embedder {
	e, err := NewONNXEmbedder(modelDir, modelName, dimension)
	if err != nil {
		if logger != nil {
			logger.Warn("falling back to static embedder", "model", modelName, "reason", err.Error())
		}
		return NewStaticEmbedder(dimension, modelName)
	}
	return e
}
