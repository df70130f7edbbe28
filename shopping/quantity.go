package shopping

import (
	"regexp"
	"strconv"
	"strings"
)

// Quantity is the structured decomposition of one raw ingredient line.
// When HasMagnitude is false the line is non-quantified and Residual holds the whole input verbatim.
type Quantity struct {
	Magnitude    float64
	HasMagnitude bool
	// Unit is the unit symbol, empty for bare counts and non-quantified lines.
	Unit     string
	Residual string
}

// Class returns the compatibility class of the quantity.
func (q Quantity) Class() Class {
	if !q.HasMagnitude {
		return ClassUnitless
	}
	if q.Unit == "" {
		return ClassCount
	}
	return units[q.Unit].Class
}

var vulgarFractions = map[rune]float64{
	'½': 0.5, '¼': 0.25, '¾': 0.75,
	'⅓': 1.0 / 3, '⅔': 2.0 / 3,
	'⅛': 0.125, '⅜': 0.375, '⅝': 0.625, '⅞': 0.875,
}

// numberPrefix matches a leading integer, decimal or a/b fraction, optionally followed by a range upper bound.
var numberPrefix = regexp.MustCompile(`^(\d+(?:[.,]\d+)*(?:/\d+)?)(?:\s*-\s*(\d+(?:[.,]\d+)*(?:/\d+)?))?`)

// thousandsGrouped matches "1,000" and "12,500.5". A leading zero ("0,500") reads as a decimal comma instead.
var thousandsGrouped = regexp.MustCompile(`^[1-9]\d{0,2}(?:,\d{3})+(?:\.\d+)?$`)

// partPrefixes name the part of an ingredient a recipe uses. The whole ingredient is what gets bought.
var partPrefixes = []string{"juice and zest of ", "zest and juice of ", "juice of ", "zest of "}

// ParseQuantity splits a raw ingredient line into magnitude, unit and residual text.
// A named unit with no number counts as one of that unit. Other lines that do not start with a number
// are returned non-quantified; this is not an error.
func ParseQuantity(raw string) Quantity {
	text := strings.TrimSpace(raw)
	nonQuantified := Quantity{Residual: text}

	// "Juice of 1 Lemon"
	for _, prefix := range partPrefixes {
		if len(text) > len(prefix) && strings.EqualFold(text[:len(prefix)], prefix) {
			if q := ParseQuantity(text[len(prefix):]); q.HasMagnitude {
				return q
			}
			break
		}
	}

	value, rest, ok := leadingNumber(text)
	if !ok {
		return implicitUnit(text, nonQuantified)
	}

	// mixed numbers: "1 1/2", "1 ½"
	if extra, after, ok := trailingFraction(rest); ok {
		value += extra
		rest = after
	}

	q := Quantity{Magnitude: value, HasMagnitude: true}

	rest = strings.TrimLeft(rest, " \t")
	word, after := splitWord(rest)
	// paired measures: "175g/6oz", "1 cup/250ml"
	unitWord, alternate, paired := strings.Cut(word, "/")
	if u, ok := LookupUnit(unitWord); ok {
		q.Unit = u.Symbol
		rest = after
		if paired {
			rest = "/" + alternate + after
		}
		rest = dropAlternate(rest)
	}

	q.Residual = strings.TrimSpace(rest)
	return q
}

// implicitUnit reads a named unit with no number ("Pinch Salt", "a pinch of nutmeg") as one of that unit.
func implicitUnit(text string, fallback Quantity) Quantity {
	word, after := splitWord(text)
	if lw := strings.ToLower(word); lw == "a" || lw == "an" {
		word, after = splitWord(strings.TrimLeft(after, " \t"))
	}
	u, ok := LookupUnit(word)
	residual := strings.TrimSpace(after)
	if !ok || u.Class != ClassNamed || residual == "" {
		return fallback
	}
	return Quantity{Magnitude: 1, HasMagnitude: true, Unit: u.Symbol, Residual: residual}
}

// dropAlternate removes a leading "/<number><unit>" alternate measure from rest.
// rest is returned unchanged when it does not start with one.
func dropAlternate(rest string) string {
	s := strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(s, "/") {
		return rest
	}
	_, after, ok := leadingNumber(strings.TrimLeft(s[1:], " \t"))
	if !ok {
		return rest
	}
	word, tail := splitWord(strings.TrimLeft(after, " \t"))
	if _, ok := LookupUnit(word); ok {
		after = tail
	}
	return after
}

// leadingNumber parses the number at the start of s and returns the unparsed remainder.
// Units glued to the number ("200g") are left at the start of the remainder.
func leadingNumber(s string) (float64, string, bool) {
	if s == "" {
		return 0, s, false
	}

	if v, ok := vulgarFractions[[]rune(s)[0]]; ok {
		return v, s[len(string([]rune(s)[0])):], true
	}

	m := numberPrefix.FindStringSubmatch(s)
	if m == nil {
		return 0, s, false
	}
	token := m[1]
	if m[2] != "" {
		// ranges keep the upper bound so the list never under-buys
		token = m[2]
	}
	v, ok := parseNumber(token)
	if !ok {
		return 0, s, false
	}
	rest := s[len(m[0]):]

	// glued vulgar fraction: "1½"
	if r := []rune(rest); len(r) > 0 {
		if f, ok := vulgarFractions[r[0]]; ok {
			v += f
			rest = string(r[1:])
		}
	}
	return v, rest, true
}

func trailingFraction(rest string) (float64, string, bool) {
	trimmed := strings.TrimLeft(rest, " \t")
	if trimmed == rest || trimmed == "" {
		return 0, rest, false
	}
	word, after := splitWord(trimmed)
	if r := []rune(word); len(r) == 1 {
		if f, ok := vulgarFractions[r[0]]; ok {
			return f, after, true
		}
	}
	if !strings.Contains(word, "/") {
		return 0, rest, false
	}
	f, ok := parseNumber(word)
	if !ok || f >= 1 {
		return 0, rest, false
	}
	return f, after, true
}

func parseNumber(token string) (float64, bool) {
	if num, den, found := strings.Cut(token, "/"); found {
		n, ok := parseDecimal(num)
		if !ok {
			return 0, false
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	return parseDecimal(token)
}

func parseDecimal(s string) (float64, bool) {
	if thousandsGrouped.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	} else {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func splitWord(s string) (string, string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}
