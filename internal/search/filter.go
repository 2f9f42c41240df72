package search

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ReedMe1234/lgrep/internal/chunk"
)

// Filter narrows a result set by score, extension, language, and path
// patterns (spec §4.6). Zero value matches everything.
type Filter struct {
	MinScore       float32
	Extensions     []string
	Languages      []string
	PathPattern    string
	ExcludePattern string
	MaxResults     int
}

// Matches evaluates the five clauses in order, each rejecting on mismatch.
// Invalid PathPattern/ExcludePattern regexes are treated as "no constraint"
// (spec §9: re-design leaves Filter's own silent-discard behavior intact,
// unlike hybrid_search's keyword regex).
func (f *Filter) Matches(c chunk.Chunk, score float32) bool {
	if f == nil {
		return true
	}

	if f.MinScore != 0 && score < f.MinScore {
		return false
	}

	if len(f.Extensions) > 0 {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(c.FilePath), "."))
		if ext == "" || !containsFold(f.Extensions, ext) {
			return false
		}
	}

	if len(f.Languages) > 0 {
		if c.Language == "" || !containsFold(f.Languages, c.Language) {
			return false
		}
	}

	if f.PathPattern != "" {
		if re, err := regexp.Compile(f.PathPattern); err == nil {
			if !re.MatchString(c.FilePath) {
				return false
			}
		}
	}

	if f.ExcludePattern != "" {
		if re, err := regexp.Compile(f.ExcludePattern); err == nil {
			if re.MatchString(c.FilePath) {
				return false
			}
		}
	}

	return true
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
