package shopping

import "strings"

// IngredientLine is one raw ingredient line and the recipe it came from.
type IngredientLine struct {
	Raw      string `json:"raw"`
	RecipeID string `json:"recipe_id"`
}

// ParsedLine is an ingredient line after parsing and normalization.
type ParsedLine struct {
	Line      IngredientLine
	Quantity  Quantity
	Canonical Canonical
}

// ParseLine runs the quantity parser and normalizer over one line.
func ParseLine(line IngredientLine) ParsedLine {
	q := ParseQuantity(line.Raw)
	return ParsedLine{
		Line:      line,
		Quantity:  q,
		Canonical: Normalize(q.Residual),
	}
}

// amountDelimiter separates sub-amounts of incompatible compatibility classes.
const amountDelimiter = " + "

// Entry is one merged line of the shopping list.
type Entry struct {
	MergeKey    string `json:"merge_key"`
	DisplayName string `json:"display_name"`
	// Amounts holds one rendered sub-amount per compatibility class, in first-seen class order.
	Amounts []string `json:"amounts,omitempty"`
	// Notes holds non-quantified lines verbatim, deduplicated.
	Notes     []string `json:"notes,omitempty"`
	RecipeIDs []string `json:"recipe_ids"`
	Category  Category `json:"category"`
}

// QuantityText is the combined quantity text of the entry.
func (e Entry) QuantityText() string {
	return strings.Join(e.Amounts, amountDelimiter)
}

// Text renders the entry as "<quantity> <name>" followed by any free-text notes in parentheses.
func (e Entry) Text() string {
	s := strings.TrimSpace(e.QuantityText() + " " + e.DisplayName)
	if len(e.Notes) > 0 {
		s += " (" + strings.Join(e.Notes, "; ") + ")"
	}
	return s
}

// classKey separates named units from each other: cloves never sum with cans.
type classKey struct {
	class Class
	unit  string
}

type classSum struct {
	key    classKey
	system System
	total  float64
}

type group struct {
	entry   Entry
	sums    []*classSum
	byClass map[classKey]*classSum
	notes   map[string]bool
	recipes map[string]bool
}

// Aggregate merges parsed lines by merge key. Groups, classes, notes and recipe ids
// all keep first-seen order, so identical input always yields identical output.
// Lines with an empty merge key are ignored.
func Aggregate(lines []ParsedLine) []Entry {
	var order []*group
	groups := make(map[string]*group)

	for _, pl := range lines {
		key := pl.Canonical.MergeKey
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &group{
				entry:   Entry{MergeKey: key, DisplayName: pl.Canonical.DisplayName},
				byClass: make(map[classKey]*classSum),
				notes:   make(map[string]bool),
				recipes: make(map[string]bool),
			}
			groups[key] = g
			order = append(order, g)
		}
		g.add(pl)
	}

	entries := make([]Entry, 0, len(order))
	for _, g := range order {
		for _, s := range g.sums {
			g.entry.Amounts = append(g.entry.Amounts, s.render())
		}
		entries = append(entries, g.entry)
	}
	return entries
}

func (g *group) add(pl ParsedLine) {
	if id := pl.Line.RecipeID; !g.recipes[id] {
		g.recipes[id] = true
		g.entry.RecipeIDs = append(g.entry.RecipeIDs, id)
	}

	q := pl.Quantity
	if !q.HasMagnitude {
		note := strings.TrimSpace(pl.Line.Raw)
		if note != "" && !g.notes[note] {
			g.notes[note] = true
			g.entry.Notes = append(g.entry.Notes, note)
		}
		return
	}

	key := classKey{class: q.Class()}
	base := q.Magnitude
	system := SystemNone
	if q.Unit != "" {
		u := units[q.Unit]
		system = u.System
		base = q.Magnitude * u.ToBase
		if u.Class == ClassNamed {
			key.unit = u.Symbol
		}
	}

	s, ok := g.byClass[key]
	if !ok {
		s = &classSum{key: key, system: system}
		g.byClass[key] = s
		g.sums = append(g.sums, s)
	}
	s.total += base
}

func (s *classSum) render() string {
	switch s.key.class {
	case ClassVolume, ClassMass:
		return renderBase(s.key.class, s.system, s.total)
	case ClassNamed:
		return formatAmount(s.total, units[s.key.unit])
	default:
		return formatMagnitude(s.total)
	}
}
