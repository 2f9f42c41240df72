// Package ignore provides gitignore-aware path exclusion for directory
// traversal, combining .gitignore, the generic .ignore file, and lgrep's
// own .lgrepignore.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// Matcher decides whether a path under root should be excluded from
// discovery.
type Matcher struct {
	root     string
	matchers []*ignore.GitIgnore
}

// ignoreFileNames are read from every directory level root down to each
// candidate file's parent, honoring repo, global, generic, and lgrep-
// specific ignore files (spec §4.4, §6).
var ignoreFileNames = []string{".gitignore", ".ignore", ".lgrepignore"}

// New builds a Matcher for root, loading every ignore file found from root
// down through its subdirectories, plus the user's global .gitignore and
// root's .git/info/exclude.
func New(root string) (*Matcher, error) {
	m := &Matcher{root: root}

	if home, err := os.UserHomeDir(); err == nil {
		if g, ok := loadFile(filepath.Join(home, ".gitignore")); ok {
			m.matchers = append(m.matchers, g)
		}
	}

	if g, ok := loadFile(filepath.Join(root, ".git", "info", "exclude")); ok {
		m.matchers = append(m.matchers, g)
	}

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() != filepath.Base(root) && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		for _, name := range ignoreFileNames {
			if g, ok := loadFile(filepath.Join(path, name)); ok {
				m.matchers = append(m.matchers, g)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Excluded reports whether relPath (relative to root) should be skipped:
// hidden files/directories, or any loaded ignore file matching it.
func (m *Matcher) Excluded(relPath string) bool {
	for _, part := range strings.Split(filepath.ToSlash(relPath), "/") {
		if isHidden(part) {
			return true
		}
	}
	for _, g := range m.matchers {
		if g.MatchesPath(relPath) {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func loadFile(path string) (*ignore.GitIgnore, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	lines := parseLines(string(content))
	if len(lines) == 0 {
		return nil, false
	}
	return ignore.CompileIgnoreLines(lines...), true
}

// parseLines extracts non-empty, non-comment lines from gitignore content.
func parseLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
