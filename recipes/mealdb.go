package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"mealcart"
)

// DefaultMealDBBaseURL is the public TheMealDB v1 API with the test key.
const DefaultMealDBBaseURL = "https://www.themealdb.com/api/json/v1/1"

// mealDBSlots is the number of strIngredientN/strMeasureN pairs in a meal record.
const mealDBSlots = 20

// MealDBClient fetches recipes from TheMealDB lookup endpoint.
type MealDBClient struct {
	baseURL    string
	httpClient mealcart.HTTPClient
}

// NewMealDBClient creates a client for the given base URL. An empty base URL uses DefaultMealDBBaseURL.
func NewMealDBClient(baseURL string, httpClient mealcart.HTTPClient) *MealDBClient {
	if baseURL == "" {
		baseURL = DefaultMealDBBaseURL
	}
	return &MealDBClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type lookupResponse struct {
	Meals []map[string]any `json:"meals"`
}

// Fetch looks up a single meal by id.
func (c *MealDBClient) Fetch(ctx context.Context, id string) (Recipe, error) {
	endpoint := fmt.Sprintf("%s/lookup.php?i=%s", c.baseURL, url.QueryEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Recipe{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Recipe{}, &TransientError{ID: id, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Recipe{}, NotFound(id)
	}
	if resp.StatusCode != http.StatusOK {
		return Recipe{}, &TransientError{ID: id, Err: fmt.Errorf("lookup failed: %s", resp.Status)}
	}

	var out lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Recipe{}, &TransientError{ID: id, Err: fmt.Errorf("decode lookup response: %w", err)}
	}
	if len(out.Meals) == 0 {
		return Recipe{}, NotFound(id)
	}

	return recipeFromMeal(out.Meals[0]), nil
}

func recipeFromMeal(meal map[string]any) Recipe {
	r := Recipe{
		ID:       field(meal, "idMeal"),
		Name:     field(meal, "strMeal"),
		Category: field(meal, "strCategory"),
		Area:     field(meal, "strArea"),
	}
	for i := 1; i <= mealDBSlots; i++ {
		name := field(meal, fmt.Sprintf("strIngredient%d", i))
		if name == "" {
			continue
		}
		r.Ingredients = append(r.Ingredients, Ingredient{
			Name:    name,
			Measure: field(meal, fmt.Sprintf("strMeasure%d", i)),
		})
	}
	return r
}

// field returns a trimmed string value, treating null and non-string values as empty.
func field(meal map[string]any, key string) string {
	s, _ := meal[key].(string)
	return strings.TrimSpace(s)
}
