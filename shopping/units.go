package shopping

import (
	"math"
	"strconv"
	"strings"
)

// Class is a unit compatibility class. Magnitudes are only summed within a class.
type Class int

const (
	ClassUnitless Class = iota // free text, never summed
	ClassCount                 // bare numbers: "2 eggs"
	ClassVolume
	ClassMass
	ClassNamed // countable containers and portions: cloves, cans, pinches
)

func (c Class) String() string {
	switch c {
	case ClassCount:
		return "count"
	case ClassVolume:
		return "volume"
	case ClassMass:
		return "mass"
	case ClassNamed:
		return "named"
	default:
		return "unitless"
	}
}

// System is the measurement system a unit belongs to. It picks the ladder used to render sums.
type System int

const (
	SystemNone System = iota
	SystemUS
	SystemMetric
)

// Unit is one entry of the fixed unit vocabulary.
type Unit struct {
	Symbol string
	Class  Class
	System System
	// ToBase converts one of this unit to the class base (ml for volume, g for mass, 1 otherwise).
	ToBase float64
	Plural string
}

const tspML = 4.92892159375

var units = map[string]Unit{
	"tsp":  {Symbol: "tsp", Class: ClassVolume, System: SystemUS, ToBase: tspML, Plural: "tsp"},
	"tbsp": {Symbol: "tbsp", Class: ClassVolume, System: SystemUS, ToBase: 3 * tspML, Plural: "tbsp"},
	"cup":  {Symbol: "cup", Class: ClassVolume, System: SystemUS, ToBase: 48 * tspML, Plural: "cups"},
	"ml":   {Symbol: "ml", Class: ClassVolume, System: SystemMetric, ToBase: 1, Plural: "ml"},
	"l":    {Symbol: "l", Class: ClassVolume, System: SystemMetric, ToBase: 1000, Plural: "l"},
	"g":    {Symbol: "g", Class: ClassMass, System: SystemMetric, ToBase: 1, Plural: "g"},
	"kg":   {Symbol: "kg", Class: ClassMass, System: SystemMetric, ToBase: 1000, Plural: "kg"},
	"oz":   {Symbol: "oz", Class: ClassMass, System: SystemUS, ToBase: 28.349523125, Plural: "oz"},
	"lb":   {Symbol: "lb", Class: ClassMass, System: SystemUS, ToBase: 453.59237, Plural: "lb"},

	"clove":   named("clove", "cloves"),
	"can":     named("can", "cans"),
	"tin":     named("tin", "tins"),
	"jar":     named("jar", "jars"),
	"slice":   named("slice", "slices"),
	"pinch":   named("pinch", "pinches"),
	"dash":    named("dash", "dashes"),
	"sprig":   named("sprig", "sprigs"),
	"bunch":   named("bunch", "bunches"),
	"handful": named("handful", "handfuls"),
	"piece":   named("piece", "pieces"),
	"stick":   named("stick", "sticks"),
	"packet":  named("packet", "packets"),
}

func named(singular, plural string) Unit {
	return Unit{Symbol: singular, Class: ClassNamed, ToBase: 1, Plural: plural}
}

// unitAliases maps every accepted spelling to a unit symbol.
var unitAliases = map[string]string{
	"tsp": "tsp", "tsps": "tsp", "teaspoon": "tsp", "teaspoons": "tsp",
	"tbsp": "tbsp", "tbsps": "tbsp", "tbs": "tbsp", "tbls": "tbsp", "tblsp": "tbsp",
	"tablespoon": "tbsp", "tablespoons": "tbsp",
	"cup": "cup", "cups": "cup",
	"ml": "ml", "mls": "ml", "milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"l": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"g": "g", "gr": "g", "gram": "g", "grams": "g", "gramme": "g", "grammes": "g",
	"kg": "kg", "kgs": "kg", "kilogram": "kg", "kilograms": "kg",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",

	"clove": "clove", "cloves": "clove",
	"can": "can", "cans": "can",
	"tin": "tin", "tins": "tin",
	"jar": "jar", "jars": "jar",
	"slice": "slice", "slices": "slice",
	"pinch": "pinch", "pinches": "pinch",
	"dash": "dash", "dashes": "dash",
	"sprig": "sprig", "sprigs": "sprig",
	"bunch": "bunch", "bunches": "bunch",
	"handful": "handful", "handfuls": "handful",
	"piece": "piece", "pieces": "piece",
	"stick": "stick", "sticks": "stick",
	"packet": "packet", "packets": "packet",
}

// LookupUnit resolves a unit token, ignoring case and a trailing period ("Tbsp.").
func LookupUnit(token string) (Unit, bool) {
	t := strings.TrimSuffix(strings.ToLower(token), ".")
	sym, ok := unitAliases[t]
	if !ok {
		return Unit{}, false
	}
	return units[sym], true
}

// ladders list the units a summed amount may be rendered in, largest first.
var ladders = map[Class]map[System][]string{
	ClassVolume: {
		SystemUS:     {"cup", "tbsp", "tsp"},
		SystemMetric: {"l", "ml"},
	},
	ClassMass: {
		SystemUS:     {"lb", "oz"},
		SystemMetric: {"kg", "g"},
	},
}

// renderBase renders a base-unit sum using the largest unit of the system's ladder that keeps it >= 1.
func renderBase(class Class, system System, base float64) string {
	ladder := ladders[class][system]
	if len(ladder) == 0 {
		return formatMagnitude(base)
	}
	for i, sym := range ladder {
		u := units[sym]
		v := base / u.ToBase
		if round2(v) >= 1 || i == len(ladder)-1 {
			return formatAmount(v, u)
		}
	}
	return formatMagnitude(base)
}

func formatAmount(v float64, u Unit) string {
	label := u.Symbol
	if round2(v) != 1 {
		label = u.Plural
	}
	return formatMagnitude(v) + " " + label
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatMagnitude prints at most two decimals and no trailing zeros.
func formatMagnitude(v float64) string {
	r := round2(v)
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
