package shopping

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"mealcart"
	"mealcart/recipes"
)

// DefaultConcurrency is the maximum number of in-flight recipe fetches.
const DefaultConcurrency = 4

// Builder turns recipe ids into a shopping list. It holds no per-build state and is safe for concurrent use
// as long as its provider is.
type Builder struct {
	provider    recipes.Provider
	concurrency int
	recorder    mealcart.BuildRecorder
	newRunID    func() string
}

// Option configures a Builder.
type Option func(*Builder)

// WithConcurrency caps in-flight fetches. Values below 1 fall back to DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithRecorder sets where build logs are written.
func WithRecorder(r mealcart.BuildRecorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// NewBuilder creates a Builder over the given provider.
func NewBuilder(p recipes.Provider, opts ...Option) *Builder {
	b := &Builder{
		provider:    p,
		concurrency: DefaultConcurrency,
		recorder:    mealcart.NewNoOpBuildRecorder(),
		newRunID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type fetchResult struct {
	recipe recipes.Recipe
	err    *FetchError
}

// Build fetches every recipe, then merges their ingredients into one list.
// Recipes that fail to fetch are returned in skipped (input order) and contribute nothing.
// Duplicate ids are fetched and counted once.
func (b *Builder) Build(ctx context.Context, recipeIDs []string) (*List, []string, error) {
	start := time.Now()
	ids := uniqueIDs(recipeIDs)

	log := mealcart.BuildLog{
		RunID:     b.newRunID(),
		Timestamp: start,
		RecipeIDs: ids,
	}
	defer func() {
		log.Duration = time.Since(start).String()
		if err := b.recorder.RecordBuild(log); err != nil {
			slog.Error("BUILD: Failed to record build", "error", err, "run_id", log.RunID)
		}
	}()

	if len(ids) == 0 {
		log.Error = ErrEmptyInput.Error()
		return nil, nil, ErrEmptyInput
	}

	slog.Info("BUILD: Starting", "run_id", log.RunID, "recipes", len(ids), "concurrency", b.concurrency)

	results := b.fetchAll(ctx, ids)
	if err := ctx.Err(); err != nil {
		log.Error = err.Error()
		return nil, nil, err
	}

	var (
		fetched  []recipes.Recipe
		skipped  []string
		failures []*FetchError
	)
	for i, res := range results {
		fl := mealcart.FetchLog{RecipeID: ids[i]}
		if res.err != nil {
			fl.Error = res.err.Error()
			skipped = append(skipped, ids[i])
			failures = append(failures, res.err)
			slog.Warn("BUILD: Skipping recipe",
				"run_id", log.RunID,
				"recipe_id", ids[i],
				"not_found", res.err.NotFound(),
				"transient", res.err.Transient(),
				"error", res.err.Err,
			)
		} else {
			fl.Name = res.recipe.Name
			fl.Lines = len(res.recipe.Lines())
			fetched = append(fetched, res.recipe)
		}
		log.Fetches = append(log.Fetches, fl)
	}
	log.SkippedIDs = skipped

	if len(fetched) == 0 {
		err := &AllFetchesFailedError{Failures: failures}
		log.Error = err.Error()
		return nil, skipped, err
	}

	list := BuildFromRecipes(fetched)
	log.Entries = list.Len()
	log.Categories = len(list.Sections)

	slog.Info("BUILD: Finished",
		"run_id", log.RunID,
		"entries", log.Entries,
		"categories", log.Categories,
		"skipped", len(skipped),
	)

	return list, skipped, nil
}

// fetchAll fetches every id with at most b.concurrency requests in flight.
// Each goroutine writes only its own slot, and Wait is the join barrier before aggregation.
func (b *Builder) fetchAll(ctx context.Context, ids []string) []fetchResult {
	results := make([]fetchResult, len(ids))

	var g errgroup.Group
	g.SetLimit(b.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			r, err := b.provider.Fetch(ctx, id)
			if err != nil {
				results[i] = fetchResult{err: &FetchError{RecipeID: id, Err: err}}
				return nil
			}
			if r.ID == "" {
				r.ID = id
			}
			results[i] = fetchResult{recipe: r}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// BuildShoppingList builds a list with a default Builder over p.
func BuildShoppingList(ctx context.Context, p recipes.Provider, recipeIDs []string) (*List, []string, error) {
	return NewBuilder(p).Build(ctx, recipeIDs)
}

// BuildFromRecipes runs the pure aggregation pipeline over already-fetched recipes:
// extract, parse, normalize, aggregate, categorize, assemble.
func BuildFromRecipes(recs []recipes.Recipe) *List {
	var parsed []ParsedLine
	refs := make([]RecipeRef, 0, len(recs))
	for _, r := range recs {
		refs = append(refs, RecipeRef{ID: r.ID, Name: r.Name})
		for _, line := range ExtractLines(r) {
			parsed = append(parsed, ParseLine(line))
		}
	}

	entries := Aggregate(parsed)
	for i := range entries {
		entries[i].Category = Categorize(Canonical{MergeKey: entries[i].MergeKey, DisplayName: entries[i].DisplayName})
	}

	return Assemble(refs, entries)
}

// ExtractLines adapts a recipe record into ingredient lines tagged with the recipe id.
func ExtractLines(r recipes.Recipe) []IngredientLine {
	raw := r.Lines()
	lines := make([]IngredientLine, len(raw))
	for i, s := range raw {
		lines[i] = IngredientLine{Raw: s, RecipeID: r.ID}
	}
	return lines
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// IsUserError reports whether err is one of the errors a caller should show to a user
// rather than treat as an internal failure.
func IsUserError(err error) bool {
	var all *AllFetchesFailedError
	return errors.Is(err, ErrEmptyInput) || errors.As(err, &all)
}
