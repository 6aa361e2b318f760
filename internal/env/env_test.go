package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	a := Vars{"A": "1", "B": "1"}
	b := Vars{"B": "2", "C": "2"}

	merged := Merge(a, b)
	assert.Equal(t, Vars{"A": "1", "B": "2", "C": "2"}, merged)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DECKCTL_OUTLINE=outline.yaml\nDECKCTL_LOG_LEVEL=debug\n"), 0o644))

	vars, err := LoadEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, "outline.yaml", vars["DECKCTL_OUTLINE"])
	assert.Equal(t, "debug", vars["DECKCTL_LOG_LEVEL"])
}

func TestLoadEnvFilesMergeOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.env"), []byte("KEY=first\nONLY_A=yes\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.env"), []byte("KEY=second\n"), 0o644))

	vars, err := LoadEnvFiles(dir, []string{"a.env", "b.env", ""})
	require.NoError(t, err)
	assert.Equal(t, "second", vars["KEY"])
	assert.Equal(t, "yes", vars["ONLY_A"])
}

func TestLoadEnvFilesMissingFile(t *testing.T) {
	_, err := LoadEnvFiles(t.TempDir(), []string{"missing.env"})
	require.Error(t, err)
}
