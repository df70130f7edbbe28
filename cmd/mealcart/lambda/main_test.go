package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"mealcart/recipes"
	"mealcart/shopping"
	"mealcart/tools"
)

// spanCountingFlusher records how many spans had ended each time it was flushed.
type spanCountingFlusher struct {
	recorder *tracetest.SpanRecorder
	ended    []int
}

func (f *spanCountingFlusher) ForceFlush(ctx context.Context) error {
	f.ended = append(f.ended, len(f.recorder.Ended()))
	return nil
}

func newTestHandler(t *testing.T) (func(context.Context, tools.Call) (Results, error), *tracetest.SpanRecorder, *spanCountingFlusher) {
	t.Helper()

	catalog, err := recipes.DecodeCatalog([]byte(`[
		{"id":"1","name":"Pancakes","ingredients":[{"name":"flour","measure":"2 cups"},{"name":"eggs","measure":"2"}]}
	]`), recipes.FormatJSON)
	require.NoError(t, err)

	registry, err := tools.NewRegistry(shopping.NewBuilder(catalog), catalog, nil)
	require.NoError(t, err)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	f := &spanCountingFlusher{recorder: recorder}
	return newHandler(registry, tp.Tracer("test"), f, f), recorder, f
}

func TestHandler_FlushesAfterToolSpanEnds(t *testing.T) {
	handler, recorder, f := newTestHandler(t)

	res, err := handler(context.Background(), tools.Call{
		Name:      "shopping_list_build",
		Input:     map[string]any{"recipe_ids": []any{"1"}},
		ToolUseID: "tu-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "tu-1", res.ToolUseID)
	assert.Contains(t, res.Output["text"], "Flour")

	// traces then metrics, both after the tool span ended
	assert.Equal(t, []int{1, 1}, f.ended)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "tool.shopping_list_build", spans[0].Name())
}

func TestHandler_FailedCallIsFlushedWithErrorStatus(t *testing.T) {
	handler, recorder, f := newTestHandler(t)

	_, err := handler(context.Background(), tools.Call{Name: "recipe_search"})
	require.Error(t, err)

	assert.Equal(t, []int{1, 1}, f.ended)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
