package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindEnvFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Empty(t, FindEnvFile(nested))

	envPath := filepath.Join(root, "a", ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("ORCACPI_RPC=http://localhost:8899\n"), 0o600))
	assert.Equal(t, envPath, FindEnvFile(nested))

	// out of reach: nested/c/d -> d, c, b
	deeper := filepath.Join(nested, "c", "d")
	require.NoError(t, os.MkdirAll(deeper, 0o755))
	assert.Empty(t, FindEnvFile(deeper))
}

func TestFindEnvFileSkipsDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".env"), 0o755))
	assert.Empty(t, FindEnvFile(root))
}
