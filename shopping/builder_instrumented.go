package shopping

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"mealcart/recipes"
)

// InstrumentedBuilder is a Builder that emits traces and metrics for every build and recipe fetch.
type InstrumentedBuilder struct {
	inner  *Builder
	tracer trace.Tracer

	builds        metric.Int64Counter
	buildsFailed  metric.Int64Counter
	entriesGauge  metric.Int64Gauge
	skippedGauge  metric.Int64Gauge
	buildDuration metric.Float64Histogram
}

// NewInstrumentedBuilder initializes a Builder whose provider calls are traced and measured.
func NewInstrumentedBuilder(p recipes.Provider, tracer trace.Tracer, meter metric.Meter, opts ...Option) *InstrumentedBuilder {
	fetches, _ := meter.Int64Counter("recipe_fetches_total",
		metric.WithDescription("Total number of recipe fetches attempted"))
	fetchesFailed, _ := meter.Int64Counter("recipe_fetches_failed_total",
		metric.WithDescription("Total number of recipe fetches that failed"))
	fetchDuration, _ := meter.Float64Histogram("recipe_fetch_duration_seconds",
		metric.WithDescription("Time taken to fetch a single recipe in seconds"))

	builds, _ := meter.Int64Counter("shopping_builds_total",
		metric.WithDescription("Total number of shopping list builds started"))
	buildsFailed, _ := meter.Int64Counter("shopping_builds_failed_total",
		metric.WithDescription("Total number of shopping list builds that failed"))
	entriesGauge, _ := meter.Int64Gauge("shopping_entries_count",
		metric.WithDescription("Number of entries in the latest shopping list"))
	skippedGauge, _ := meter.Int64Gauge("shopping_skipped_recipes_count",
		metric.WithDescription("Number of recipes skipped in the latest build"))
	buildDuration, _ := meter.Float64Histogram("shopping_build_duration_seconds",
		metric.WithDescription("Total duration of a shopping list build in seconds"))

	ip := &instrumentedProvider{
		next:          p,
		tracer:        tracer,
		fetches:       fetches,
		fetchesFailed: fetchesFailed,
		fetchDuration: fetchDuration,
	}

	return &InstrumentedBuilder{
		inner:         NewBuilder(ip, opts...),
		tracer:        tracer,
		builds:        builds,
		buildsFailed:  buildsFailed,
		entriesGauge:  entriesGauge,
		skippedGauge:  skippedGauge,
		buildDuration: buildDuration,
	}
}

// Build runs Builder.Build inside a span and records its outcome.
func (b *InstrumentedBuilder) Build(ctx context.Context, recipeIDs []string) (*List, []string, error) {
	ctx, span := b.tracer.Start(ctx, "InstrumentedBuilder.Build", trace.WithAttributes(
		attribute.Int("recipes.requested", len(recipeIDs)),
	))
	defer span.End()

	start := time.Now()
	b.builds.Add(ctx, 1)

	list, skipped, err := b.inner.Build(ctx, recipeIDs)

	b.buildDuration.Record(ctx, time.Since(start).Seconds())
	b.skippedGauge.Record(ctx, int64(len(skipped)))
	span.SetAttributes(attribute.StringSlice("recipes.skipped", skipped))

	if err != nil {
		reason := "internal"
		var all *AllFetchesFailedError
		switch {
		case errors.Is(err, ErrEmptyInput):
			reason = "empty_input"
		case errors.As(err, &all):
			reason = "all_fetches_failed"
		}
		b.buildsFailed.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
		span.SetStatus(codes.Error, reason)
		span.RecordError(err)
		return nil, skipped, err
	}

	b.entriesGauge.Record(ctx, int64(list.Len()))
	span.SetAttributes(
		attribute.Int("list.entries", list.Len()),
		attribute.Int("list.categories", len(list.Sections)),
	)
	span.SetStatus(codes.Ok, "")
	return list, skipped, nil
}

type instrumentedProvider struct {
	next          recipes.Provider
	tracer        trace.Tracer
	fetches       metric.Int64Counter
	fetchesFailed metric.Int64Counter
	fetchDuration metric.Float64Histogram
}

func (p *instrumentedProvider) Fetch(ctx context.Context, id string) (recipes.Recipe, error) {
	ctx, span := p.tracer.Start(ctx, "RecipeProvider.Fetch", trace.WithAttributes(
		attribute.String("recipe.id", id),
	))
	defer span.End()

	start := time.Now()
	p.fetches.Add(ctx, 1)

	r, err := p.next.Fetch(ctx, id)
	p.fetchDuration.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		kind := "other"
		switch {
		case errors.Is(err, recipes.ErrNotFound):
			kind = "not_found"
		case recipes.IsTransient(err):
			kind = "transient"
		}
		p.fetchesFailed.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
		span.SetStatus(codes.Error, kind)
		span.RecordError(err)
		return recipes.Recipe{}, err
	}

	span.SetAttributes(attribute.Int("recipe.ingredients", len(r.Ingredients)))
	return r, nil
}
