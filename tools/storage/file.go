package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type FileRecipeState struct {
	FilePath string
}

func NewFileRecipeState(filePath string) *FileRecipeState {
	return &FileRecipeState{FilePath: filePath}
}

func (r *FileRecipeState) Load(ctx context.Context) ([]byte, error) {
	return os.ReadFile(r.FilePath)
}

// DirArtifactStore writes artifacts into a local directory, creating it on first save.
type DirArtifactStore struct {
	Dir string
}

func NewDirArtifactStore(dir string) *DirArtifactStore {
	return &DirArtifactStore{Dir: dir}
}

func (d *DirArtifactStore) Save(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create artifacts dir: %w", err)
	}
	path := filepath.Join(d.Dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	return path, nil
}
