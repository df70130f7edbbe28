package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mealcart"
	"mealcart/recipes"
	"mealcart/shopping"
	"mealcart/tools"
	"mealcart/tools/storage"
)

type Results struct {
	ToolUseID string         `json:"tool_use_id,omitempty"`
	Output    map[string]any `json:"output"`
}

func main() {
	ctx := context.Background()

	var cartConfig mealcart.CartConfig
	if err := envdecode.Decode(&cartConfig); err != nil {
		slog.Error("SETUP: Failed to decode config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(mealcart.NewLogger(os.Stdout, cartConfig.LogLevel, "json"))

	var s3Config mealcart.S3Config
	if err := envdecode.Decode(&s3Config); err != nil {
		slog.Error("SETUP: Missing S3 config", "error", err)
		os.Exit(1)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRetryMaxAttempts(5))
	if err != nil {
		slog.Error("SETUP: Failed to load AWS config", "error", err)
		os.Exit(1)
	}
	s3Client := s3.NewFromConfig(awsCfg)

	provider, err := newProvider(ctx, cartConfig, s3Config, s3Client)
	if err != nil {
		slog.Error("SETUP: Failed to create recipe provider", "error", err)
		os.Exit(1)
	}

	tracerProvider, meterProvider, otelShutdown, err := mealcart.InitOtel(ctx)
	if err != nil {
		slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
		os.Exit(1)
	}
	shutdown := func() {
		if err := otelShutdown(ctx); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}

	builder := shopping.NewInstrumentedBuilder(
		provider,
		tracerProvider.Tracer(mealcart.TracerNameBuilder),
		meterProvider.Meter(mealcart.TracerNameBuilder),
		shopping.WithConcurrency(cartConfig.FetchConcurrency),
		shopping.WithRecorder(mealcart.NewStdoutBuildRecorder()),
	)
	artifacts := storage.NewS3ArtifactStore(s3Client, s3Config.Bucket, s3Config.OutputPrefix)

	registry, err := tools.NewRegistry(builder, provider, artifacts)
	if err != nil {
		slog.Error("SETUP: Failed to create tool registry", "error", err)
		os.Exit(1)
	}
	slog.Info("SETUP: Tool registry initialized", "tools", len(*registry), "recipe_source", cartConfig.RecipeSource)

	fn := newHandler(registry, tracerProvider.Tracer(mealcart.TracerNameTools), tracerProvider, meterProvider)

	lambda.StartWithOptions(fn, lambda.WithEnableSIGTERM(shutdown))
}

// newHandler returns the Lambda handler that dispatches one tool call inside a "tool.<name>" span.
func newHandler(registry *tools.Registry, tracer trace.Tracer, traces, metrics flusher) func(context.Context, tools.Call) (Results, error) {
	return func(ctx context.Context, call tools.Call) (Results, error) {
		// Lambda may freeze the process between invocations. Registered first so it runs after span.End.
		defer flush(ctx, traces, metrics)

		ctx, span := tracer.Start(ctx, "tool."+call.Name, trace.WithAttributes(
			attribute.String("tool.name", call.Name),
			attribute.String("tool.use_id", call.ToolUseID),
		))
		defer span.End()

		output, err := registry.Dispatch(ctx, call)
		if err != nil {
			span.SetStatus(codes.Error, "tool failed")
			span.RecordError(err)
			slog.Error("RESULT: Tool call failed", "tool", call.Name, "error", err, "user_error", shopping.IsUserError(err))
			return Results{}, err
		}

		return Results{ToolUseID: call.ToolUseID, Output: output}, nil
	}
}

type flusher interface {
	ForceFlush(ctx context.Context) error
}

func flush(ctx context.Context, traces, metrics flusher) {
	if err := traces.ForceFlush(ctx); err != nil {
		slog.Warn("RESULT: Failed to flush traces", "error", err)
	}
	if err := metrics.ForceFlush(ctx); err != nil {
		slog.Warn("RESULT: Failed to flush metrics", "error", err)
	}
}

func newProvider(ctx context.Context, cfg mealcart.CartConfig, s3Config mealcart.S3Config, s3Client *s3.Client) (recipes.Provider, error) {
	if cfg.RecipeSource == mealcart.RecipeSourceMealDB {
		httpClient := &http.Client{Timeout: cfg.FetchTimeout}
		mealdb := recipes.NewMealDBClient(cfg.MealDBBaseURL, httpClient)
		return recipes.NewCachingProvider(mealdb, recipes.NewMemoryCache(cfg.CacheTTL)), nil
	}

	if s3Config.RecipesKey == "" {
		return nil, fmt.Errorf("ARTIFACTS_RECIPES_S3_KEY must be set when RECIPE_SOURCE=%s", cfg.RecipeSource)
	}
	rs := storage.NewS3RecipeState(s3Client, s3Config.Bucket, s3Config.RecipesKey)
	catalog, err := recipes.LoadCatalog(ctx, rs, recipes.FormatFromPath(s3Config.RecipesKey))
	if err != nil {
		return nil, fmt.Errorf("load recipe catalog from S3: %w", err)
	}
	slog.Info("SETUP: Recipe catalog loaded from S3", "bucket", s3Config.Bucket, "key", s3Config.RecipesKey, "recipes_count", catalog.Len())
	return catalog, nil
}
