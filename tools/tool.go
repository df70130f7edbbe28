package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type Tool interface {
	Name() string
	Title() string
	Description() string
	InputSchema() *jsonschema.Schema
	OutputSchema() *jsonschema.Schema
	Run(ctx context.Context, input map[string]any) (output map[string]any, err error)
}

type Call struct {
	Name      string         `json:"name"`
	Input     map[string]any `json:"input"`
	ToolUseID string         `json:"tool_use_id,omitempty"`
}

// recipeIDsArg reads the recipe_ids argument. JSON decoding yields []any; Go callers may pass []string.
func recipeIDsArg(input map[string]any) ([]string, error) {
	switch v := input["recipe_ids"].(type) {
	case []string:
		return v, nil
	case []any:
		ids := make([]string, 0, len(v))
		for i, raw := range v {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("recipe_ids[%d] must be a string, got %T", i, raw)
			}
			ids = append(ids, s)
		}
		return ids, nil
	case nil:
		return nil, fmt.Errorf("recipe_ids is required")
	default:
		return nil, fmt.Errorf("recipe_ids must be an array of strings, got %T", v)
	}
}

func recipeIDsSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "array",
		Description: "Recipe identifiers, e.g. TheMealDB meal ids. Duplicates are counted once.",
		Items:       &jsonschema.Schema{Type: "string"},
	}
}
