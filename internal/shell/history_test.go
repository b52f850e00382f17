package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryBrowse(t *testing.T) {
	h := LoadHistory("")
	assert.Equal(t, "typed", h.Prev("typed"), "empty history keeps the input")

	h.Add("SELECT 1;")
	h.Add("SELECT 1;")
	h.Add("")
	h.Add("SELECT 2;")

	assert.Equal(t, "SELECT 2;", h.Prev(""))
	assert.Equal(t, "SELECT 1;", h.Prev("SELECT 2;"))
	assert.Equal(t, "SELECT 1;", h.Prev("SELECT 1;"))
	assert.Equal(t, "SELECT 2;", h.Next())
	assert.Equal(t, "", h.Next())
	assert.Equal(t, "", h.Next())
}

func TestHistoryPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history")

	h := LoadHistory(path)
	h.Add("SELECT 1;")
	h.Add("quit")
	require.NoError(t, h.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;\nquit\n", string(data))

	reloaded := LoadHistory(path)
	assert.Equal(t, "quit", reloaded.Prev(""))
	assert.Equal(t, "SELECT 1;", reloaded.Prev(""))
}
