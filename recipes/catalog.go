package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a stored recipe collection.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a Format from a file name or object key extension. Anything that is not .yaml/.yml is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// state is the subset of storage.RecipeState the catalog needs.
type state interface {
	Load(ctx context.Context) ([]byte, error)
}

// Catalog is an immutable, in-memory Provider over a saved recipe collection.
type Catalog struct {
	byID  map[string]Recipe
	order []string
}

// LoadCatalog reads and decodes a recipe collection once. The returned Catalog never reloads.
func LoadCatalog(ctx context.Context, st state, format Format) (*Catalog, error) {
	b, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}
	return DecodeCatalog(b, format)
}

// DecodeCatalog decodes a list of recipes. Later duplicates of an id are ignored.
func DecodeCatalog(data []byte, format Format) (*Catalog, error) {
	var list []Recipe
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parse recipes: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parse recipes: %w", err)
		}
	}

	c := &Catalog{byID: make(map[string]Recipe, len(list))}
	for _, r := range list {
		if r.ID == "" {
			continue
		}
		if _, dup := c.byID[r.ID]; dup {
			continue
		}
		c.byID[r.ID] = r
		c.order = append(c.order, r.ID)
	}
	return c, nil
}

// Fetch returns the recipe with the given id or ErrNotFound.
func (c *Catalog) Fetch(ctx context.Context, id string) (Recipe, error) {
	r, ok := c.byID[id]
	if !ok {
		return Recipe{}, NotFound(id)
	}
	return r, nil
}

// IDs returns the catalog's recipe ids in stored order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of recipes in the catalog.
func (c *Catalog) Len() int { return len(c.order) }
