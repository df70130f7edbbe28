package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// RecipeState loads a saved recipe collection.
type RecipeState interface {
	Load(ctx context.Context) ([]byte, error)
}

// ArtifactStore persists rendered shopping lists and returns where they ended up.
type ArtifactStore interface {
	Save(ctx context.Context, name string, contentType string, data []byte) (string, error)
}

// TestRecipeState is a simple in-memory implementation for testing
type TestRecipeState struct {
	data []byte
	err  error
}

func NewTestRecipeState(data []byte) *TestRecipeState {
	return &TestRecipeState{data: data}
}

func NewTestRecipeStateWithError() *TestRecipeState {
	return &TestRecipeState{err: errors.New("not found")}
}

func (t *TestRecipeState) Load(ctx context.Context) ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.data, nil
}

// TestArtifactStore keeps saved artifacts in memory for testing
type TestArtifactStore struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func NewTestArtifactStore() *TestArtifactStore {
	return &TestArtifactStore{files: make(map[string][]byte)}
}

func NewTestArtifactStoreWithError() *TestArtifactStore {
	return &TestArtifactStore{files: make(map[string][]byte), err: errors.New("write failed")}
}

func (t *TestArtifactStore) Save(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.files[name] = append([]byte(nil), data...)
	return "memory://" + name, nil
}

// Get returns a saved artifact by name.
func (t *TestArtifactStore) Get(name string) ([]byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.files[name]
	return b, ok
}

// Names returns the saved artifact names, sorted.
func (t *TestArtifactStore) Names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := make([]string, 0, len(t.files))
	for n := range t.files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
