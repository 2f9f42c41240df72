package embed

import (
	"context"
	"hash/fnv"
	"regexp"
	"strings"
	"unicode"

	"github.com/ReedMe1234/lgrep/internal/errors"
)

// StaticEmbedder is a deterministic, dependency-free fallback embedder. It
// hashes tokens and character n-grams into a fixed-width vector rather than
// running a learned model, so its semantic quality is well below a real
// model's, but it never needs network access or model assets.
type StaticEmbedder struct {
	dimension int
	model     string
	closed    bool
}

// programmingStopWords is filtered out of the token stream so that
// near-universal keywords don't dominate every code chunk's vector.
var programmingStopWords = map[string]bool{
	"func": true, "function": true, "def": true, "class": true,
	"return": true, "import": true, "const": true, "var": true,
	"let": true, "int": true, "string": true, "bool": true,
	"void": true, "true": true, "false": true, "nil": true,
	"null": true, "this": true, "self": true, "new": true,
}

const (
	tokenWeight = 0.7
	ngramWeight = 0.3
	ngramSize   = 3
)

var tokenRegex = regexp.MustCompile(`[a-zA-Z0-9]+`)

// NewStaticEmbedder creates a StaticEmbedder producing vectors of the given
// dimension, reporting modelName as its ModelName (so a rebuild always
// knows which real model, if any, it is standing in for).
func NewStaticEmbedder(dimension int, modelName string) *StaticEmbedder {
	return &StaticEmbedder{dimension: dimension, model: modelName}
}

func (e *StaticEmbedder) EmbedOne(_ context.Context, text string) ([]float32, error) {
	if e.closed {
		return nil, errors.New(errors.KindEmbedding, "embedder is closed")
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return make([]float32, e.dimension), nil
	}
	return l2Normalize(e.generateVector(trimmed)), nil
}

func (e *StaticEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if e.closed {
		return nil, errors.New(errors.KindEmbedding, "embedder is closed")
	}
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := e.EmbedOne(ctx, text)
		if err != nil {
			return nil, errors.Wrapf(errors.KindEmbedding, err, "embed text %d", i)
		}
		out[i] = v
	}
	return out, nil
}

func (e *StaticEmbedder) Dimension() int   { return e.dimension }
func (e *StaticEmbedder) ModelName() string { return e.model }

func (e *StaticEmbedder) Close() error {
	e.closed = true
	return nil
}

func (e *StaticEmbedder) generateVector(text string) []float32 {
	vector := make([]float32, e.dimension)

	tokens := filterStopWords(tokenize(text))
	for _, token := range tokens {
		vector[hashToIndex(token, e.dimension)] += tokenWeight
	}

	normalized := normalizeForNgrams(text)
	for _, ngram := range extractNgrams(normalized, ngramSize) {
		vector[hashToIndex(ngram, e.dimension)] += ngramWeight
	}

	return vector
}

func tokenize(text string) []string {
	var tokens []string
	for _, word := range tokenRegex.FindAllString(text, -1) {
		for _, t := range splitCodeToken(word) {
			if lower := strings.ToLower(t); lower != "" {
				tokens = append(tokens, lower)
			}
		}
	}
	return tokens
}

func splitCodeToken(token string) []string {
	if strings.Contains(token, "_") {
		var result []string
		for _, part := range strings.Split(token, "_") {
			if part != "" {
				result = append(result, splitCamelCase(part)...)
			}
		}
		return result
	}
	return splitCamelCase(token)
}

func splitCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var result []string
	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevIsLower := unicode.IsLower(runes[i-1])
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevIsLower || nextIsLower {
				if current.Len() > 0 {
					result = append(result, current.String())
					current.Reset()
				}
			}
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}

func filterStopWords(tokens []string) []string {
	var filtered []string
	for _, t := range tokens {
		if !programmingStopWords[t] {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func normalizeForNgrams(text string) string {
	var result strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

func extractNgrams(text string, n int) []string {
	if len(text) < n {
		return nil
	}
	ngrams := make([]string, 0, len(text)-n+1)
	for i := 0; i <= len(text)-n; i++ {
		ngrams = append(ngrams, text[i:i+n])
	}
	return ngrams
}

func hashToIndex(s string, size int) int {
	h := fnv.New64()
	_, _ = h.Write([]byte(s))
	return int(h.Sum64() % uint64(size))
}
