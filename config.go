package mealcart

import "time"

// Recipe sources selectable with RECIPE_SOURCE.
const (
	RecipeSourceMealDB = "mealdb"
	RecipeSourceFile   = "file"
)

type CartConfig struct {
	MealDBBaseURL        string        `env:"MEALDB_BASE_URL,default=https://www.themealdb.com/api/json/v1/1"`
	RecipeSource         string        `env:"RECIPE_SOURCE,default=mealdb"`
	FetchConcurrency     int           `env:"FETCH_CONCURRENCY,default=4"`
	FetchTimeout         time.Duration `env:"FETCH_TIMEOUT,default=30s"`
	ArtifactsDir         string        `env:"ARTIFACTS_DIR,default=artifacts/shopping"`
	ArtifactsRecipesPath string        `env:"ARTIFACTS_RECIPES_PATH,default=artifacts/recipes.json"`
	CacheTTL             time.Duration `env:"CACHE_TTL,default=1h"`
	RedisAddr            string        `env:"REDIS_ADDR"`
	SlackWebhookURL      string        `env:"SLACK_WEBHOOK_URL"`
	SlackChannel         string        `env:"SLACK_CHANNEL,default=#groceries"`
	LogLevel             string        `env:"LOG_LEVEL,default=info"`
	LogFormat            string        `env:"LOG_FORMAT,default=text"`
}

type S3Config struct {
	Bucket       string `env:"ARTIFACTS_S3_BUCKET,required"`
	RecipesKey   string `env:"ARTIFACTS_RECIPES_S3_KEY"`
	OutputPrefix string `env:"ARTIFACTS_OUTPUT_S3_PREFIX,default=shopping/"`
}
