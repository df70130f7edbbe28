package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"mealcart/recipes"
)

type RecipeGet struct{ provider recipes.Provider }

func NewRecipeGet(provider recipes.Provider) *RecipeGet { return &RecipeGet{provider: provider} }

func (t *RecipeGet) Name() string  { return "recipe_get" }
func (t *RecipeGet) Title() string { return "Get Recipes" }
func (t *RecipeGet) Description() string {
	return "Gets recipes with their ingredient lines by recipe id. Unknown ids are listed in missing_ids."
}

func (t *RecipeGet) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipe_ids": recipeIDsSchema(),
		},
		Required: []string{"recipe_ids"},
	}
}

func (t *RecipeGet) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipes": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"id":   {Type: "string"},
						"name": {Type: "string"},
						"ingredients": {
							Type: "array",
							Items: &jsonschema.Schema{
								Type: "object",
								Properties: map[string]*jsonschema.Schema{
									"name":    {Type: "string"},
									"measure": {Type: "string"},
								},
								Required: []string{"name"},
							},
						},
					},
					Required: []string{"id", "name", "ingredients"},
				},
			},
			"missing_ids": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
		},
		Required: []string{"recipes", "missing_ids"},
	}
}

func (t *RecipeGet) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	ids, err := recipeIDsArg(input)
	if err != nil {
		return nil, err
	}

	found := make([]recipes.Recipe, 0, len(ids))
	missing := make([]string, 0)
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		r, err := t.provider.Fetch(ctx, id)
		if errors.Is(err, recipes.ErrNotFound) {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get recipe %s: %w", id, err)
		}
		found = append(found, r)
	}

	return map[string]any{"recipes": found, "missing_ids": missing}, nil
}
