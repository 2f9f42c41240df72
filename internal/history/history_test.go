package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	h, err := Load(filepath.Join(t.TempDir(), "history.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())
}

func TestAddDedupsConsecutiveQueries(t *testing.T) {
	h, err := Load(filepath.Join(t.TempDir(), "history.json"))
	require.NoError(t, err)

	h.Add("q", 1, 5, "")
	h.Add("q", 2, 3, "")
	assert.Equal(t, 1, h.Len())

	h.Add("r", 3, 2, "")
	assert.Equal(t, 2, h.Len())

	recent := h.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "r", recent[0].Query)
	assert.Equal(t, "q", recent[1].Query)
}

func TestAddCapsAtMaxEntries(t *testing.T) {
	h, err := Load(filepath.Join(t.TempDir(), "history.json"))
	require.NoError(t, err)

	for i := 0; i < MaxEntries+50; i++ {
		h.Add(string(rune('a'+i%26))+string(rune(i)), int64(i), 1, "")
	}
	assert.LessOrEqual(t, h.Len(), MaxEntries)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	h, err := Load(path)
	require.NoError(t, err)
	h.Add("test query", 100, 5, "")
	require.NoError(t, h.Save())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Len())
	assert.Equal(t, "test query", reloaded.Recent(1)[0].Query)
}

func TestTopQueriesOrdersByFrequency(t *testing.T) {
	h, err := Load(filepath.Join(t.TempDir(), "history.json"))
	require.NoError(t, err)

	h.Add("common", 1, 1, "")
	h.Add("rare", 2, 1, "")
	h.Add("common", 3, 1, "")
	h.Add("another", 4, 1, "")
	h.Add("common", 5, 1, "")

	top := h.TopQueries(2)
	require.Len(t, top, 2)
	assert.Equal(t, "common", top[0].Query)
	assert.Equal(t, 3, top[0].Count)
}

func TestSuggestFiltersByPartialCaseInsensitive(t *testing.T) {
	h, err := Load(filepath.Join(t.TempDir(), "history.json"))
	require.NoError(t, err)

	h.Add("authentication", 1, 5, "")
	h.Add("authorization", 2, 3, "")
	h.Add("database", 3, 2, "")

	suggestions := h.Suggest("AUTH", 10)
	assert.ElementsMatch(t, []string{"authentication", "authorization"}, suggestions)
}

func TestClearRemovesAllEntries(t *testing.T) {
	h, err := Load(filepath.Join(t.TempDir(), "history.json"))
	require.NoError(t, err)
	h.Add("q", 1, 1, "")
	h.Clear()
	assert.Equal(t, 0, h.Len())
}
