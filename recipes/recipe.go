package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Ingredient is one ingredient slot of a recipe: a name plus a free-text measure.
type Ingredient struct {
	Name    string `json:"name" yaml:"name"`
	Measure string `json:"measure,omitempty" yaml:"measure,omitempty"`
}

// Recipe is a recipe record as returned by a Provider.
type Recipe struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Category    string       `json:"category,omitempty" yaml:"category,omitempty"`
	Area        string       `json:"area,omitempty" yaml:"area,omitempty"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
}

// Lines returns the raw ingredient lines of the recipe in order, each formatted as "<measure> <name>".
// Ingredients with a blank name are skipped.
func (r Recipe) Lines() []string {
	lines := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			continue
		}
		measure := strings.TrimSpace(ing.Measure)
		if measure == "" {
			lines = append(lines, name)
			continue
		}
		lines = append(lines, measure+" "+name)
	}
	return lines
}

// Provider fetches recipe records by id. Implementations must be safe for concurrent use.
type Provider interface {
	Fetch(ctx context.Context, id string) (Recipe, error)
}

// ErrNotFound is returned when a recipe id does not exist at the provider.
var ErrNotFound = errors.New("recipe not found")

// TransientError is returned when a fetch failed for a reason that may go away on retry.
type TransientError struct {
	ID  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient fetch error for recipe %q: %v", e.ID, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err is, or wraps, a *TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// NotFound wraps ErrNotFound with the missing id.
func NotFound(id string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, id)
}
