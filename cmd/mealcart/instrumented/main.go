package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/go-redis/redis/v8"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"mealcart"
	"mealcart/recipes"
	"mealcart/render"
	"mealcart/shopping"
	"mealcart/slack"
	"mealcart/tools/storage"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, ids []string) error {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	var cfg mealcart.CartConfig
	if err := envdecode.Decode(&cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	slog.SetDefault(mealcart.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat))

	if len(ids) == 0 {
		return fmt.Errorf("usage: %s <recipe-id> [recipe-id...]", os.Args[0])
	}

	httpClient := &http.Client{Timeout: cfg.FetchTimeout}

	provider, err := newProvider(ctx, cfg, httpClient)
	if err != nil {
		slog.Error("SETUP: Failed to create recipe provider", "error", err)
		return err
	}

	recorder, cleanup, err := newBuildRecorder()
	if err != nil {
		slog.Error("SETUP: Failed to create build recorder", "error", err)
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("Failed to flush build log", "error", err)
		}
	}()

	tracerProvider, meterProvider, otelShutdown, err := mealcart.InitOtel(ctx)
	if err != nil {
		slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
		return err
	}
	defer func() {
		if err := otelShutdown(ctx); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	builder := shopping.NewInstrumentedBuilder(
		provider,
		tracerProvider.Tracer(mealcart.TracerNameBuilder),
		meterProvider.Meter(mealcart.TracerNameBuilder),
		shopping.WithConcurrency(cfg.FetchConcurrency),
		shopping.WithRecorder(recorder),
	)

	list, skipped, err := builder.Build(ctx, ids)
	if err != nil {
		slog.Error("RESULT: Failed to build shopping list", "error", err, "user_error", shopping.IsUserError(err))
		return err
	}

	printList(list, skipped)

	if os.Getenv("DUMP") != "" {
		mealcart.Dump(list)
	}

	now := time.Now()
	artifacts, err := render.Artifacts(list, now)
	if err != nil {
		slog.Error("RESULT: Failed to render artifacts", "error", err)
		return err
	}
	store := storage.NewDirArtifactStore(cfg.ArtifactsDir)
	green := color.New(color.FgGreen)
	for _, a := range artifacts {
		loc, err := store.Save(ctx, a.Name, a.ContentType, a.Data)
		if err != nil {
			slog.Error("RESULT: Failed to save artifact", "name", a.Name, "error", err)
			return err
		}
		green.Print("    ▶ ")
		fmt.Printf("Saved %s\n", loc)
	}

	if cfg.SlackWebhookURL != "" {
		notify(ctx, slack.NewClient(cfg.SlackWebhookURL, httpClient), cfg.SlackChannel, list)
	}

	return nil
}

// notify posts the list; delivery failures are logged and never fail the run.
func notify(ctx context.Context, client mealcart.SlackClient, channel string, list *shopping.List) {
	if err := client.PostMessage(ctx, channel, slack.FormatShoppingList(list)); err != nil {
		slog.Error("FINAL: Failed to post shopping list to Slack", "error", err)
		return
	}
	slog.Info("FINAL: Posted shopping list to Slack", "channel", channel)
}

func newProvider(ctx context.Context, cfg mealcart.CartConfig, httpClient mealcart.HTTPClient) (recipes.Provider, error) {
	if cfg.RecipeSource == mealcart.RecipeSourceFile {
		rs := storage.NewFileRecipeState(cfg.ArtifactsRecipesPath)
		catalog, err := recipes.LoadCatalog(ctx, rs, recipes.FormatFromPath(cfg.ArtifactsRecipesPath))
		if err != nil {
			return nil, err
		}
		slog.Info("SETUP: Recipe catalog loaded", "path", cfg.ArtifactsRecipesPath, "recipes_count", catalog.Len())
		return catalog, nil
	}

	mealdb := recipes.NewMealDBClient(cfg.MealDBBaseURL, httpClient)

	var cache recipes.Cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		cache = recipes.NewRedisCache(client, "", cfg.CacheTTL)
		slog.Info("SETUP: Using Redis recipe cache", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	} else {
		cache = recipes.NewMemoryCache(cfg.CacheTTL)
		slog.Info("SETUP: Using in-memory recipe cache", "ttl", cfg.CacheTTL)
	}

	return recipes.NewCachingProvider(mealdb, cache), nil
}

func printList(list *shopping.List, skipped []string) {
	cyan := color.New(color.FgCyan, color.Bold)
	gray := color.New(color.FgHiBlack)
	yellow := color.New(color.FgYellow)

	fmt.Println()
	for _, s := range list.Sections {
		cyan.Println(s.Category.Name)
		for _, e := range s.Entries {
			fmt.Printf("  - %s", e.Text())
			names := make([]string, len(e.RecipeIDs))
			for i, id := range e.RecipeIDs {
				names[i] = list.RecipeName(id)
			}
			gray.Printf("  %v\n", names)
		}
		fmt.Println()
	}

	for _, id := range skipped {
		yellow.Printf("    ! skipped recipe %s\n", id)
	}
}

func newBuildRecorder() (mealcart.BuildRecorder, func() error, error) {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return nil, func() error { return err }, fmt.Errorf("failed to create logs dir: %w", err)
	}
	logFilePath := mealcart.NewBuildLogFilePath(time.Now().Format("20060102_150405"))
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, func() error { return err }, fmt.Errorf("failed to open log file: %w", err)
	}

	recorder := mealcart.NewFileBuildRecorder(logFile)
	cleanup := func() error {
		return errors.Join(recorder.Flush(), logFile.Close())
	}
	return recorder, cleanup, nil
}
