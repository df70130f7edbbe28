package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected Category
	}{
		{name: "exact produce", key: "tomato", expected: Produce},
		{name: "exact dairy", key: "egg", expected: DairyEggs},
		{name: "exact spice", key: "salt", expected: Spices},
		{name: "pepper alone is a spice", key: "pepper", expected: Spices},
		{name: "bell pepper is produce", key: "bell pepper", expected: Produce},
		{name: "red bell pepper via keyword", key: "red bell pepper", expected: Produce},
		{name: "black peppercorn", key: "black peppercorn", expected: Spices},
		{name: "chicken breast via keyword", key: "chicken breast", expected: MeatSeafood},
		{name: "chicken stock is pantry", key: "chicken stock cube", expected: PantryDry},
		{name: "coconut milk is pantry", key: "coconut milk", expected: PantryDry},
		{name: "butternut squash is not butter", key: "butternut squash", expected: Produce},
		{name: "egg noodle is pantry", key: "egg noodle", expected: PantryDry},
		{name: "rolled oat", key: "rolled oat", expected: PantryDry},
		{name: "garlic powder is a spice", key: "garlic powder", expected: Spices},
		{name: "greek yogurt", key: "greek yogurt", expected: DairyEggs},
		{name: "tomato puree", key: "tomato puree", expected: Produce},
		{name: "white wine vinegar", key: "white wine vinegar", expected: PantryDry},
		{name: "unknown", key: "xanthan gum", expected: Other},
		{name: "empty", key: "", expected: Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Categorize(Canonical{MergeKey: tt.key}))
		})
	}
}

func TestCategories_OtherIsLast(t *testing.T) {
	cats := Categories()
	for i := 1; i < len(cats); i++ {
		assert.Less(t, cats[i-1].Order, cats[i].Order, cats[i].Name)
	}
	assert.Equal(t, Other, cats[len(cats)-1])
}
