package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestMatcherExcludesGitignorePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "*.log\nbuild/\n")
	writeFile(t, filepath.Join(root, "main.go"), "package main")
	writeFile(t, filepath.Join(root, "debug.log"), "x")

	m, err := New(root)
	require.NoError(t, err)

	assert.False(t, m.Excluded("main.go"))
	assert.True(t, m.Excluded("debug.log"))
	assert.True(t, m.Excluded("build/output.bin"))
}

func TestMatcherExcludesHiddenFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "main.go"), "package main")

	m, err := New(root)
	require.NoError(t, err)

	assert.True(t, m.Excluded(".hidden"))
	assert.True(t, m.Excluded(".git/config"))
	assert.False(t, m.Excluded("src/main.go"))
}

func TestMatcherHonorsGitInfoExclude(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "info", "exclude"), "secrets/\n")
	writeFile(t, filepath.Join(root, "secrets", "key.pem"), "x")

	m, err := New(root)
	require.NoError(t, err)

	assert.True(t, m.Excluded("secrets/key.pem"))
}

func TestMatcherHonorsLgrepIgnore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".lgrepignore"), "vendor/\n")
	writeFile(t, filepath.Join(root, "vendor", "lib.go"), "package vendor")

	m, err := New(root)
	require.NoError(t, err)

	assert.True(t, m.Excluded("vendor/lib.go"))
}
