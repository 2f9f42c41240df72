// Package history persists and queries the append-only log of past
// searches (spec §6).
package history

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/ReedMe1234/lgrep/internal/errors"
)

// MaxEntries caps the persisted history; older entries are dropped.
const MaxEntries = 100

// Entry is one past search, newest entries appended last.
type Entry struct {
	Query       string `json:"query"`
	Timestamp   int64  `json:"timestamp"`
	ResultCount int    `json:"result_count"`
	Filters     string `json:"filters,omitempty"`
}

// History is the query log for one index, stored as history.json.
type History struct {
	path    string
	Entries []Entry `json:"entries"`
}

// Load reads history.json at path, returning an empty History if the file
// does not exist.
func Load(path string) (*History, error) {
	h := &History{path: path}

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return h, nil
	}
	if err != nil {
		return nil, errors.Wrapf(errors.KindIO, err, "read %s", path)
	}

	if err := json.Unmarshal(content, h); err != nil {
		return nil, errors.Wrapf(errors.KindJSON, err, "parse %s", path)
	}
	h.path = path
	return h, nil
}

// Save persists the history to its source path.
func (h *History) Save() error {
	content, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return errors.Wrap(errors.KindJSON, err)
	}
	if err := os.WriteFile(h.path, content, 0o644); err != nil {
		return errors.Wrapf(errors.KindIO, err, "write %s", h.path)
	}
	return nil
}

// Add appends a query entry, coalescing with the immediately preceding
// entry when it has the same query text, and trims to MaxEntries.
func (h *History) Add(query string, timestamp int64, resultCount int, filters string) {
	if n := len(h.Entries); n > 0 && h.Entries[n-1].Query == query {
		return
	}

	h.Entries = append(h.Entries, Entry{
		Query:       query,
		Timestamp:   timestamp,
		ResultCount: resultCount,
		Filters:     filters,
	})

	if len(h.Entries) > MaxEntries {
		h.Entries = h.Entries[len(h.Entries)-MaxEntries:]
	}
}

// Clear removes every entry.
func (h *History) Clear() {
	h.Entries = nil
}

// Recent returns up to limit entries, most recent first.
func (h *History) Recent(limit int) []Entry {
	n := len(h.Entries)
	if limit > n {
		limit = n
	}
	out := make([]Entry, limit)
	for i := 0; i < limit; i++ {
		out[i] = h.Entries[n-1-i]
	}
	return out
}

// TopQueries returns the limit most frequent queries, most frequent first.
func (h *History) TopQueries(limit int) []QueryCount {
	counts := make(map[string]int)
	for _, e := range h.Entries {
		counts[e.Query]++
	}

	top := make([]QueryCount, 0, len(counts))
	for q, c := range counts {
		top = append(top, QueryCount{Query: q, Count: c})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Query < top[j].Query
	})
	if limit < len(top) {
		top = top[:limit]
	}
	return top
}

// QueryCount pairs a query with how often it appears in history.
type QueryCount struct {
	Query string
	Count int
}

// Suggest returns up to limit distinct past queries containing partial
// (case-insensitive), most recent first.
func (h *History) Suggest(partial string, limit int) []string {
	needle := strings.ToLower(partial)
	seen := make(map[string]bool)
	var suggestions []string

	for i := len(h.Entries) - 1; i >= 0 && len(suggestions) < limit; i-- {
		q := h.Entries[i].Query
		if seen[q] {
			continue
		}
		if !strings.Contains(strings.ToLower(q), needle) {
			continue
		}
		seen[q] = true
		suggestions = append(suggestions, q)
	}
	return suggestions
}

// Len returns the number of persisted entries.
func (h *History) Len() int {
	return len(h.Entries)
}
