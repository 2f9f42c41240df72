package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// chdir switches the process into dir for the duration of a test and
// returns a function that restores the previous working directory.
func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}
