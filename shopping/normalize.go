package shopping

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical is the normalized identity of a foodstuff.
type Canonical struct {
	// MergeKey decides which lines are the same ingredient.
	MergeKey    string
	DisplayName string
}

// modifierPhrases are stripped wherever they occur, before single words.
var modifierPhrases = [][]string{
	{"to", "taste"},
	{"for", "garnish"},
	{"for", "serving"},
	{"to", "serve"},
	{"at", "room", "temperature"},
	{"cut", "into", "pieces"},
	{"plus", "extra"},
}

var modifierWords = map[string]bool{
	"fresh": true, "freshly": true, "chopped": true, "diced": true, "minced": true,
	"sliced": true, "grated": true, "shredded": true, "crushed": true, "ground": true,
	"finely": true, "roughly": true, "coarsely": true, "thinly": true, "thickly": true,
	"peeled": true, "cubed": true, "halved": true, "quartered": true, "julienned": true,
	"melted": true, "softened": true, "beaten": true, "whisked": true, "drained": true,
	"rinsed": true, "packed": true, "heaped": true, "heaping": true, "level": true,
	"large": true, "medium": true, "small": true, "optional": true, "about": true,
	"approx": true, "approximately": true, "juiced": true, "zested": true, "trimmed": true,
	"deseeded": true, "seeded": true, "pitted": true, "toasted": true,
}

// edgeWords are dropped only at the start or end of what remains ("of milk", "salt and").
var edgeWords = map[string]bool{"of": true, "and": true, "or": true, "a": true, "an": true}

var irregularPlurals = map[string]string{
	"leaves":    "leaf",
	"loaves":    "loaf",
	"halves":    "half",
	"knives":    "knife",
	"cookies":   "cookie",
	"brownies":  "brownie",
	"pies":      "pie",
	"smoothies": "smoothie",
	"geese":     "goose",
	"teeth":     "tooth",
}

// invariantNouns end in "s" but are already singular.
var invariantNouns = map[string]bool{
	"molasses": true, "asparagus": true, "couscous": true, "hummus": true,
	"swiss": true, "grits": true, "citrus": true, "octopus": true, "lemongrass": true,
	"watercress": true, "series": true, "species": true,
}

// Normalize reduces a residual ingredient text to its merge key and display name.
func Normalize(residual string) Canonical {
	tokens := tokenize(residual)
	kept := stripModifiers(tokens)
	if len(kept) == 0 {
		kept = trimEdges(tokens)
	}
	if len(kept) == 0 {
		return Canonical{}
	}

	folded := make([]string, len(kept))
	for i, t := range kept {
		folded[i] = strings.ToLower(t)
	}
	folded[len(folded)-1] = Singularize(folded[len(folded)-1])

	return Canonical{
		MergeKey:    strings.Join(folded, " "),
		DisplayName: cases.Title(language.English).String(strings.Join(kept, " ")),
	}
}

// tokenize splits on whitespace and punctuation, keeping hyphens and apostrophes inside words.
// Tokens that start with a digit ("400g" from "(400g)") are dropped.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '\'')
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "-'")
		if f == "" || unicode.IsDigit([]rune(f)[0]) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func stripModifiers(tokens []string) []string {
	var kept []string
	for i := 0; i < len(tokens); {
		if n := matchPhrase(tokens[i:]); n > 0 {
			i += n
			continue
		}
		if modifierWords[strings.ToLower(tokens[i])] {
			i++
			continue
		}
		kept = append(kept, tokens[i])
		i++
	}
	return trimEdges(kept)
}

func matchPhrase(tokens []string) int {
	for _, phrase := range modifierPhrases {
		if len(tokens) < len(phrase) {
			continue
		}
		match := true
		for j, w := range phrase {
			if strings.ToLower(tokens[j]) != w {
				match = false
				break
			}
		}
		if match {
			return len(phrase)
		}
	}
	return 0
}

func trimEdges(tokens []string) []string {
	for len(tokens) > 0 && edgeWords[strings.ToLower(tokens[0])] {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && edgeWords[strings.ToLower(tokens[len(tokens)-1])] {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// Singularize turns a lower-case plural noun into its singular form with a small suffix rule set.
func Singularize(word string) string {
	if s, ok := irregularPlurals[word]; ok {
		return s
	}
	if invariantNouns[word] || len(word) <= 3 {
		return word
	}
	switch {
	case strings.HasSuffix(word, "ss"), strings.HasSuffix(word, "us"), strings.HasSuffix(word, "is"):
		return word
	case strings.HasSuffix(word, "ies"):
		return strings.TrimSuffix(word, "ies") + "y"
	case strings.HasSuffix(word, "oes"):
		return strings.TrimSuffix(word, "es")
	case strings.HasSuffix(word, "ches"), strings.HasSuffix(word, "shes"),
		strings.HasSuffix(word, "xes"), strings.HasSuffix(word, "sses"), strings.HasSuffix(word, "zzes"):
		return strings.TrimSuffix(word, "es")
	case strings.HasSuffix(word, "s"):
		return strings.TrimSuffix(word, "s")
	}
	return word
}
