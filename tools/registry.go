package tools

import (
	"context"
	"fmt"
	"sort"

	"mealcart/recipes"
	"mealcart/tools/storage"
)

// Registry maps tool names to implementations
type Registry map[string]Tool

// NewRegistry creates a new tool registry over a list builder and the provider it fetches from.
func NewRegistry(builder ListBuilder, provider recipes.Provider, artifacts storage.ArtifactStore) (*Registry, error) {
	if builder == nil || provider == nil {
		return nil, fmt.Errorf("registry needs a builder and a recipe provider")
	}

	tools := map[string]Tool{
		"shopping_list_build": NewShoppingListBuild(builder, artifacts),
		"recipe_get":          NewRecipeGet(provider),
	}

	registry := Registry(tools)
	return &registry, nil
}

// GetTools returns all tools in the registry, sorted by name
func (r *Registry) GetTools() []Tool {
	tools := make([]Tool, 0, len(*r))
	for _, tool := range *r {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r Registry) GetTool(name string) (Tool, error) {
	tool, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}

// Dispatch runs the tool named by call with its input.
func (r Registry) Dispatch(ctx context.Context, call Call) (map[string]any, error) {
	tool, err := r.GetTool(call.Name)
	if err != nil {
		return nil, err
	}
	input := call.Input
	if input == nil {
		input = map[string]any{}
	}
	return tool.Run(ctx, input)
}
