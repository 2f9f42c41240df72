package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_HasModelFlag(t *testing.T) {
	cmd := NewRootCmd()
	watchCmd, _, err := cmd.Find([]string{"watch"})
	require.NoError(t, err)
	assert.NotNil(t, watchCmd.Flags().Lookup("model"))
}

func TestWatchCmd_PerformsInitialSync(t *testing.T) {
	testDir := t.TempDir()
	createTestProject(t, testDir)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	cmd := NewRootCmd()
	cmd.SetContext(ctx)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"watch", testDir})

	_ = cmd.Execute()

	assert.FileExists(t, filepath.Join(testDir, ".lgrep", "metadata.bin"))
}
