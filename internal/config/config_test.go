package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), ".env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BINGO_TEST_LOAD=yes\n"), 0o600))
	t.Setenv("BINGO_TEST_LOAD", "")
	require.NoError(t, os.Unsetenv("BINGO_TEST_LOAD"))

	require.NoError(t, Load(path))
	assert.Equal(t, "yes", os.Getenv("BINGO_TEST_LOAD"))
}
