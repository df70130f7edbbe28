package tools

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealcart/shopping"
	"mealcart/tools/storage"
)

func TestShoppingListBuild_Run(t *testing.T) {
	tool := NewShoppingListBuild(shopping.NewBuilder(testCatalog(t)), nil)

	result, err := tool.Run(context.Background(), map[string]any{"recipe_ids": []any{"52772", "53013", "gone"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"gone"}, result["skipped_ids"])
	assert.NotContains(t, result, "artifacts")

	list, ok := result["shopping_list"].(*shopping.List)
	require.True(t, ok)
	assert.Len(t, list.Recipes, 2)

	text, ok := result["text"].(string)
	require.True(t, ok)
	assert.Equal(t, shopping.RenderAsText(list), text)
	assert.Contains(t, text, "- 3 cloves Garlic\n")
	assert.Contains(t, text, "- 12 tbsp Soy Sauce\n")
	assert.Contains(t, text, "Salt (to taste salt)")
	assert.True(t, strings.HasPrefix(text, "Produce\n"))
}

func TestShoppingListBuild_Run_NoSkips(t *testing.T) {
	tool := NewShoppingListBuild(shopping.NewBuilder(testCatalog(t)), nil)

	result, err := tool.Run(context.Background(), map[string]any{"recipe_ids": []any{"52772"}})
	require.NoError(t, err)
	assert.Equal(t, []string{}, result["skipped_ids"])
}

func TestShoppingListBuild_Run_Errors(t *testing.T) {
	tool := NewShoppingListBuild(shopping.NewBuilder(testCatalog(t)), nil)

	t.Run("empty input", func(t *testing.T) {
		_, err := tool.Run(context.Background(), map[string]any{"recipe_ids": []any{}})
		assert.ErrorIs(t, err, shopping.ErrEmptyInput)
		assert.ErrorContains(t, err, "build shopping list")
	})

	t.Run("all recipes missing", func(t *testing.T) {
		_, err := tool.Run(context.Background(), map[string]any{"recipe_ids": []any{"x", "y"}})
		var all *shopping.AllFetchesFailedError
		assert.ErrorAs(t, err, &all)
		assert.True(t, shopping.IsUserError(err))
	})

	t.Run("missing argument", func(t *testing.T) {
		_, err := tool.Run(context.Background(), map[string]any{})
		assert.Error(t, err)
	})
}

func TestShoppingListBuild_Run_SavesArtifacts(t *testing.T) {
	store := storage.NewTestArtifactStore()
	tool := NewShoppingListBuild(shopping.NewBuilder(testCatalog(t)), store)
	tool.now = func() time.Time { return time.Date(2025, 10, 19, 10, 15, 0, 0, time.UTC) }

	result, err := tool.Run(context.Background(), map[string]any{"recipe_ids": []any{"52772"}})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"memory://shopping_list_20251019_101500.txt",
		"memory://shopping_list_20251019_101500.html",
	}, result["artifacts"])
	assert.Equal(t, []string{"shopping_list_20251019_101500.html", "shopping_list_20251019_101500.txt"}, store.Names())

	txt, ok := store.Get("shopping_list_20251019_101500.txt")
	require.True(t, ok)
	assert.Equal(t, result["text"], string(txt))

	t.Run("store failure", func(t *testing.T) {
		tool := NewShoppingListBuild(shopping.NewBuilder(testCatalog(t)), storage.NewTestArtifactStoreWithError())
		_, err := tool.Run(context.Background(), map[string]any{"recipe_ids": []any{"52772"}})
		assert.ErrorContains(t, err, "save artifact")
	})
}

func TestShoppingListBuild_ToolMethods(t *testing.T) {
	tool := NewShoppingListBuild(shopping.NewBuilder(testCatalog(t)), nil)

	assert.Equal(t, "shopping_list_build", tool.Name())
	assert.Equal(t, "Build Shopping List", tool.Title())
	assert.NotEmpty(t, tool.Description())

	in := tool.InputSchema()
	assert.Equal(t, []string{"recipe_ids"}, in.Required)

	out := tool.OutputSchema()
	assert.ElementsMatch(t, []string{"shopping_list", "text", "skipped_ids"}, out.Required)
	assert.Contains(t, out.Properties, "artifacts")
}
