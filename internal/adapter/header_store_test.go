package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "chisel.dev/pkg/chisel/internal/model"
)

func TestHeaderStoreRoundTrip(t *testing.T) {
	dir := m.Path(filepath.Join(t.TempDir(), "include"))
	store := NewLocalHeaderStore()

	outputs := m.Outputs{
		"shapes.h": "#include \"shapes/geometry.h\"\n",
		m.HeaderID(filepath.Join("shapes", "geometry.h")): "typedef int32_t Coord;\n",
	}

	require.NoError(t, store.WriteHeaders(dir, outputs))

	t.Run("nested directories are created", func(t *testing.T) {
		data, err := store.ReadHeader(dir, m.Path(filepath.Join("shapes", "geometry.h")))
		require.NoError(t, err)
		assert.Equal(t, "typedef int32_t Coord;\n", string(data))
	})

	t.Run("listing returns relative paths in lexical order", func(t *testing.T) {
		headers, err := store.ListHeaders(dir)
		require.NoError(t, err)

		assert.Equal(t, []m.Path{
			"shapes.h",
			m.Path(filepath.Join("shapes", "geometry.h")),
		}, headers)
	})

	t.Run("non-header files are ignored", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(string(dir), "notes.txt"), []byte("x"), 0o600))

		headers, err := store.ListHeaders(dir)
		require.NoError(t, err)

		for _, header := range headers {
			assert.NotEqual(t, m.Path("notes.txt"), header)
		}
	})
}

func TestListHeadersMissingDir(t *testing.T) {
	store := NewLocalHeaderStore()

	_, err := store.ListHeaders(m.Path(filepath.Join(t.TempDir(), "missing")))

	assert.Error(t, err)
}
