package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"mealcart/render"
	"mealcart/shopping"
	"mealcart/tools/storage"
)

// ListBuilder is satisfied by shopping.Builder and shopping.InstrumentedBuilder.
type ListBuilder interface {
	Build(ctx context.Context, recipeIDs []string) (*shopping.List, []string, error)
}

type ShoppingListBuild struct {
	builder   ListBuilder
	artifacts storage.ArtifactStore
	now       func() time.Time
}

// NewShoppingListBuild creates the tool. A nil artifact store skips writing artifacts.
func NewShoppingListBuild(builder ListBuilder, artifacts storage.ArtifactStore) *ShoppingListBuild {
	return &ShoppingListBuild{builder: builder, artifacts: artifacts, now: time.Now}
}

func (t *ShoppingListBuild) Name() string  { return "shopping_list_build" }
func (t *ShoppingListBuild) Title() string { return "Build Shopping List" }
func (t *ShoppingListBuild) Description() string {
	return "Builds one consolidated, category-ordered shopping list from the ingredients of the given recipes. " +
		"Recipes that cannot be fetched are skipped and reported in skipped_ids."
}

func (t *ShoppingListBuild) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipe_ids": recipeIDsSchema(),
		},
		Required: []string{"recipe_ids"},
	}
}

func (t *ShoppingListBuild) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"shopping_list": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"recipes": {
						Type: "array",
						Items: &jsonschema.Schema{
							Type: "object",
							Properties: map[string]*jsonschema.Schema{
								"id":   {Type: "string"},
								"name": {Type: "string"},
							},
							Required: []string{"id", "name"},
						},
					},
					"sections": {
						Type: "array",
						Items: &jsonschema.Schema{
							Type: "object",
							// entries carry merge_key, display_name, amounts, notes, recipe_ids
						},
					},
				},
				Required: []string{"recipes", "sections"},
			},
			"text": {
				Type:        "string",
				Description: "Plain text rendering of the list.",
			},
			"skipped_ids": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
			"artifacts": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
		},
		Required: []string{"shopping_list", "text", "skipped_ids"},
	}
}

func (t *ShoppingListBuild) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	ids, err := recipeIDsArg(input)
	if err != nil {
		return nil, err
	}

	list, skipped, err := t.builder.Build(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("build shopping list: %w", err)
	}
	if skipped == nil {
		skipped = []string{}
	}

	out := map[string]any{
		"shopping_list": list,
		"text":          shopping.RenderAsText(list),
		"skipped_ids":   skipped,
	}

	if t.artifacts == nil {
		return out, nil
	}

	arts, err := render.Artifacts(list, t.now())
	if err != nil {
		return nil, fmt.Errorf("render artifacts: %w", err)
	}
	locations := make([]string, 0, len(arts))
	for _, a := range arts {
		loc, err := t.artifacts.Save(ctx, a.Name, a.ContentType, a.Data)
		if err != nil {
			return nil, fmt.Errorf("save artifact: %w", err)
		}
		locations = append(locations, loc)
	}
	out["artifacts"] = locations

	return out, nil
}
