package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelsCmd_ListsAllFourModels(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"models"})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	for _, tag := range []string{"minilm", "bge-small", "nomic-embed", "multilingual-e5-small"} {
		assert.Contains(t, out, tag)
	}
}
