package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRecipeState(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		data     []byte
	}{
		{
			name:     "json recipes file",
			filename: "recipes.json",
			data:     []byte(`[{"id": "52772", "name": "Teriyaki Chicken Casserole"}]`),
		},
		{
			name:     "yaml recipes file",
			filename: "recipes.yaml",
			data:     []byte("- id: \"52772\"\n  name: Teriyaki Chicken Casserole\n"),
		},
		{
			name:     "empty recipes file",
			filename: "empty.json",
			data:     []byte(`[]`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := filepath.Join(tmpDir, tt.filename)
			require.NoError(t, os.WriteFile(filePath, tt.data, 0644))

			recipeState := NewFileRecipeState(filePath)
			loadedData, err := recipeState.Load(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.data, loadedData)
		})
	}

	t.Run("load nonexistent file", func(t *testing.T) {
		recipeState := NewFileRecipeState(filepath.Join(tmpDir, "nonexistent.json"))
		_, err := recipeState.Load(context.Background())
		assert.Error(t, err)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestDirArtifactStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts", "nested")
	store := NewDirArtifactStore(dir)

	loc, err := store.Save(context.Background(), "shopping_list_20251019_101500.txt", "text/plain", []byte("Produce\n- 2 Onions\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shopping_list_20251019_101500.txt"), loc)

	b, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "Produce\n- 2 Onions\n", string(b))

	t.Run("names cannot escape the directory", func(t *testing.T) {
		loc, err := store.Save(context.Background(), "../escape.txt", "text/plain", []byte("x"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "escape.txt"), loc)
	})
}

func TestTestArtifactStore(t *testing.T) {
	store := NewTestArtifactStore()
	_, err := store.Save(context.Background(), "b.html", "text/html", []byte("<p>b</p>"))
	require.NoError(t, err)
	_, err = store.Save(context.Background(), "a.txt", "text/plain", []byte("a"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "b.html"}, store.Names())
	got, ok := store.Get("a.txt")
	assert.True(t, ok)
	assert.Equal(t, []byte("a"), got)

	_, err = NewTestArtifactStoreWithError().Save(context.Background(), "a.txt", "text/plain", nil)
	assert.Error(t, err)
}
