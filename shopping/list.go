package shopping

import (
	"sort"
	"strings"
)

// RecipeRef identifies a recipe that contributed to a list.
type RecipeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Section is one category of the list with its entries in first-occurrence order.
type Section struct {
	Category Category `json:"category"`
	Entries  []Entry  `json:"entries"`
}

// List is a finished shopping list. Sections never contain zero entries.
type List struct {
	Recipes  []RecipeRef `json:"recipes"`
	Sections []Section   `json:"sections"`
}

// Len returns the number of entries across all sections.
func (l *List) Len() int {
	n := 0
	for _, s := range l.Sections {
		n += len(s.Entries)
	}
	return n
}

// Entries returns every entry in display order.
func (l *List) Entries() []Entry {
	out := make([]Entry, 0, l.Len())
	for _, s := range l.Sections {
		out = append(out, s.Entries...)
	}
	return out
}

// RecipeName returns the name of a contributing recipe, or its id when the name is unknown.
func (l *List) RecipeName(id string) string {
	for _, r := range l.Recipes {
		if r.ID == id && r.Name != "" {
			return r.Name
		}
	}
	return id
}

// Assemble groups categorized entries into sections ordered by category display order.
// Entry order inside a section is the order of the input slice.
func Assemble(recipes []RecipeRef, entries []Entry) *List {
	byName := make(map[string]int)
	var sections []Section
	for _, e := range entries {
		i, ok := byName[e.Category.Name]
		if !ok {
			i = len(sections)
			byName[e.Category.Name] = i
			sections = append(sections, Section{Category: e.Category})
		}
		sections[i].Entries = append(sections[i].Entries, e)
	}

	sort.SliceStable(sections, func(a, b int) bool {
		return sections[a].Category.Order < sections[b].Category.Order
	})

	if sections == nil {
		sections = []Section{}
	}
	return &List{Recipes: recipes, Sections: sections}
}

// RenderAsText renders the list as plain text: a header line per category followed by
// one "- " bullet per entry, with a blank line between categories.
func RenderAsText(l *List) string {
	var b strings.Builder
	for i, s := range l.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Category.Name)
		b.WriteString("\n")
		for _, e := range s.Entries {
			b.WriteString("- ")
			b.WriteString(e.Text())
			b.WriteString("\n")
		}
	}
	return b.String()
}
