package shopping

import (
	"errors"
	"fmt"
	"strings"

	"mealcart/recipes"
)

// ErrEmptyInput is returned when Build is called without any recipe ids.
var ErrEmptyInput = errors.New("no recipe ids supplied")

// FetchError records why one recipe could not be fetched. It never aborts a build on its own.
type FetchError struct {
	RecipeID string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch recipe %q: %v", e.RecipeID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NotFound reports whether the recipe does not exist at the provider.
func (e *FetchError) NotFound() bool { return errors.Is(e.Err, recipes.ErrNotFound) }

// Transient reports whether the failure may go away on retry.
func (e *FetchError) Transient() bool { return recipes.IsTransient(e.Err) }

// AllFetchesFailedError is returned when no requested recipe could be fetched.
type AllFetchesFailedError struct {
	Failures []*FetchError
}

func (e *AllFetchesFailedError) Error() string {
	ids := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		ids[i] = f.RecipeID
	}
	return fmt.Sprintf("all %d recipe fetches failed: %s", len(e.Failures), strings.Join(ids, ", "))
}

// Unwrap exposes every fetch failure to errors.Is and errors.As.
func (e *AllFetchesFailedError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}
