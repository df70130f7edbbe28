package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Quantity
	}{
		{
			name:     "integer with volume unit",
			raw:      "2 cups chopped tomatoes",
			expected: Quantity{Magnitude: 2, HasMagnitude: true, Unit: "cup", Residual: "chopped tomatoes"},
		},
		{
			name:     "simple fraction",
			raw:      "1/2 tsp cinnamon",
			expected: Quantity{Magnitude: 0.5, HasMagnitude: true, Unit: "tsp", Residual: "cinnamon"},
		},
		{
			name:     "decimal with mass unit",
			raw:      "1.5 kg potatoes",
			expected: Quantity{Magnitude: 1.5, HasMagnitude: true, Unit: "kg", Residual: "potatoes"},
		},
		{
			name:     "decimal comma",
			raw:      "0,5 l milk",
			expected: Quantity{Magnitude: 0.5, HasMagnitude: true, Unit: "l", Residual: "milk"},
		},
		{
			name:     "unit glued to number",
			raw:      "200g flour",
			expected: Quantity{Magnitude: 200, HasMagnitude: true, Unit: "g", Residual: "flour"},
		},
		{
			name:     "mixed number",
			raw:      "1 1/2 cups sugar",
			expected: Quantity{Magnitude: 1.5, HasMagnitude: true, Unit: "cup", Residual: "sugar"},
		},
		{
			name:     "vulgar fraction",
			raw:      "½ tsp salt",
			expected: Quantity{Magnitude: 0.5, HasMagnitude: true, Unit: "tsp", Residual: "salt"},
		},
		{
			name:     "glued vulgar fraction",
			raw:      "1½ cups rice",
			expected: Quantity{Magnitude: 1.5, HasMagnitude: true, Unit: "cup", Residual: "rice"},
		},
		{
			name:     "range keeps upper bound",
			raw:      "2-3 cloves garlic",
			expected: Quantity{Magnitude: 3, HasMagnitude: true, Unit: "clove", Residual: "garlic"},
		},
		{
			name:     "long unit alias with trailing period",
			raw:      "3 Tbsp. olive oil",
			expected: Quantity{Magnitude: 3, HasMagnitude: true, Unit: "tbsp", Residual: "olive oil"},
		},
		{
			name:     "bare count",
			raw:      "3 eggs",
			expected: Quantity{Magnitude: 3, HasMagnitude: true, Residual: "eggs"},
		},
		{
			name:     "count with size word is not a unit",
			raw:      "2 large onions",
			expected: Quantity{Magnitude: 2, HasMagnitude: true, Residual: "large onions"},
		},
		{
			name:     "non-quantified line",
			raw:      "salt to taste",
			expected: Quantity{Residual: "salt to taste"},
		},
		{
			name:     "handful without a number",
			raw:      "handful of love",
			expected: Quantity{Magnitude: 1, HasMagnitude: true, Unit: "handful", Residual: "of love"},
		},
		{
			name:     "named unit without a number counts as one",
			raw:      "Pinch Salt",
			expected: Quantity{Magnitude: 1, HasMagnitude: true, Unit: "pinch", Residual: "Salt"},
		},
		{
			name:     "article before a named unit",
			raw:      "a pinch of nutmeg",
			expected: Quantity{Magnitude: 1, HasMagnitude: true, Unit: "pinch", Residual: "of nutmeg"},
		},
		{
			name:     "measure unit without a number stays free text",
			raw:      "Cup Flour",
			expected: Quantity{Residual: "Cup Flour"},
		},
		{
			name:     "named unit alone stays free text",
			raw:      "Dash",
			expected: Quantity{Residual: "Dash"},
		},
		{
			name:     "part of an ingredient buys the whole ingredient",
			raw:      "Juice of 1 Lemon",
			expected: Quantity{Magnitude: 1, HasMagnitude: true, Residual: "Lemon"},
		},
		{
			name:     "part prefix without a number stays free text",
			raw:      "Zest of half an orange",
			expected: Quantity{Residual: "Zest of half an orange"},
		},
		{
			name:     "paired metric and imperial measure",
			raw:      "175g/6oz Butter",
			expected: Quantity{Magnitude: 175, HasMagnitude: true, Unit: "g", Residual: "Butter"},
		},
		{
			name:     "paired measure with spaced unit",
			raw:      "1 cup/250ml milk",
			expected: Quantity{Magnitude: 1, HasMagnitude: true, Unit: "cup", Residual: "milk"},
		},
		{
			name:     "paired measure with spaces around the slash",
			raw:      "175 g / 6 oz butter",
			expected: Quantity{Magnitude: 175, HasMagnitude: true, Unit: "g", Residual: "butter"},
		},
		{
			name:     "slash without an alternate measure is kept",
			raw:      "2 cups/ flour",
			expected: Quantity{Magnitude: 2, HasMagnitude: true, Unit: "cup", Residual: "/ flour"},
		},
		{
			name:     "thousands separator",
			raw:      "1,000 g flour",
			expected: Quantity{Magnitude: 1000, HasMagnitude: true, Unit: "g", Residual: "flour"},
		},
		{
			name:     "thousands separator glued to unit",
			raw:      "1,500ml stock",
			expected: Quantity{Magnitude: 1500, HasMagnitude: true, Unit: "ml", Residual: "stock"},
		},
		{
			name:     "leading zero keeps decimal comma",
			raw:      "0,500 kg rice",
			expected: Quantity{Magnitude: 0.5, HasMagnitude: true, Unit: "kg", Residual: "rice"},
		},
		{
			name:     "malformed grouping falls back to free text",
			raw:      "1.2.3 cups water",
			expected: Quantity{Residual: "1.2.3 cups water"},
		},
		{
			name:     "zero denominator falls back to free text",
			raw:      "1/0 cup water",
			expected: Quantity{Residual: "1/0 cup water"},
		},
		{
			name:     "surrounding whitespace is trimmed",
			raw:      "  4 oz cheddar  ",
			expected: Quantity{Magnitude: 4, HasMagnitude: true, Unit: "oz", Residual: "cheddar"},
		},
		{
			name:     "number only",
			raw:      "2",
			expected: Quantity{Magnitude: 2, HasMagnitude: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuantity(tt.raw)
			assert.Equal(t, tt.expected.HasMagnitude, got.HasMagnitude)
			assert.InDelta(t, tt.expected.Magnitude, got.Magnitude, 1e-9)
			assert.Equal(t, tt.expected.Unit, got.Unit)
			assert.Equal(t, tt.expected.Residual, got.Residual)
		})
	}
}

func TestQuantity_Class(t *testing.T) {
	assert.Equal(t, ClassUnitless, ParseQuantity("salt to taste").Class())
	assert.Equal(t, ClassCount, ParseQuantity("2 eggs").Class())
	assert.Equal(t, ClassVolume, ParseQuantity("2 tbsp oil").Class())
	assert.Equal(t, ClassMass, ParseQuantity("1 lb beef").Class())
	assert.Equal(t, ClassNamed, ParseQuantity("1 can tomatoes").Class())
}
