package recipes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const teriyakiMeal = `{"meals":[{
	"idMeal":"52772",
	"strMeal":"Teriyaki Chicken Casserole",
	"strCategory":"Chicken",
	"strArea":"Japanese",
	"strIngredient1":"soy sauce","strMeasure1":"3/4 cup",
	"strIngredient2":"water","strMeasure2":"1/2 cup",
	"strIngredient3":"brown sugar","strMeasure3":"1/4 cup ",
	"strIngredient4":" ","strMeasure4":" ",
	"strIngredient5":"garlic","strMeasure5":null,
	"strIngredient6":null,"strMeasure6":null,
	"strIngredient20":"stir-fry vegetables","strMeasure20":"3 cups"
}]}`

func newMealDBServer(t *testing.T, handler http.HandlerFunc) *MealDBClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewMealDBClient(srv.URL+"/", srv.Client())
}

func TestMealDBClient_Fetch(t *testing.T) {
	var gotPath, gotQuery string
	c := newMealDBServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("i")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(teriyakiMeal))
	})

	r, err := c.Fetch(context.Background(), "52772")
	require.NoError(t, err)

	assert.Equal(t, "/lookup.php", gotPath)
	assert.Equal(t, "52772", gotQuery)
	assert.Equal(t, "52772", r.ID)
	assert.Equal(t, "Teriyaki Chicken Casserole", r.Name)
	assert.Equal(t, "Chicken", r.Category)
	assert.Equal(t, "Japanese", r.Area)
	assert.Equal(t, []Ingredient{
		{Name: "soy sauce", Measure: "3/4 cup"},
		{Name: "water", Measure: "1/2 cup"},
		{Name: "brown sugar", Measure: "1/4 cup"},
		{Name: "garlic"},
		{Name: "stir-fry vegetables", Measure: "3 cups"},
	}, r.Ingredients)
	assert.Equal(t, []string{
		"3/4 cup soy sauce",
		"1/2 cup water",
		"1/4 cup brown sugar",
		"garlic",
		"3 cups stir-fry vegetables",
	}, r.Lines())
}

func TestMealDBClient_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		notFound  bool
		transient bool
	}{
		{name: "null meals", status: http.StatusOK, body: `{"meals":null}`, notFound: true},
		{name: "empty meals", status: http.StatusOK, body: `{"meals":[]}`, notFound: true},
		{name: "404", status: http.StatusNotFound, body: ``, notFound: true},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, transient: true},
		{name: "rate limited", status: http.StatusTooManyRequests, body: ``, transient: true},
		{name: "malformed body", status: http.StatusOK, body: `{"meals":`, transient: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newMealDBServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Fetch(context.Background(), "1")
			require.Error(t, err)
			assert.Equal(t, tt.notFound, errors.Is(err, ErrNotFound))
			assert.Equal(t, tt.transient, IsTransient(err))
		})
	}
}

type failingDoer struct{ err error }

func (f failingDoer) Do(*http.Request) (*http.Response, error) { return nil, f.err }

func TestMealDBClient_Fetch_NetworkError(t *testing.T) {
	boom := errors.New("dial tcp: connection refused")
	c := NewMealDBClient("", failingDoer{err: boom})
	assert.Equal(t, DefaultMealDBBaseURL, c.baseURL)

	_, err := c.Fetch(context.Background(), "52772")
	assert.True(t, IsTransient(err))
	assert.ErrorIs(t, err, boom)
}
