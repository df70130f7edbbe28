package shopping

import "strings"

// Category is a shopping list section. Order fixes the display order.
type Category struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

var (
	Produce     = Category{Name: "Produce", Order: 1}
	MeatSeafood = Category{Name: "Meat & Seafood", Order: 2}
	DairyEggs   = Category{Name: "Dairy & Eggs", Order: 3}
	Bakery      = Category{Name: "Bakery", Order: 4}
	PantryDry   = Category{Name: "Pantry & Dry", Order: 5}
	Spices      = Category{Name: "Spices", Order: 6}
	Beverages   = Category{Name: "Beverages", Order: 7}
	Other       = Category{Name: "Other", Order: 99}
)

// Categories returns every category in display order. Other is always last.
func Categories() []Category {
	return []Category{Produce, MeatSeafood, DairyEggs, Bakery, PantryDry, Spices, Beverages, Other}
}

// exactCategories maps a merge key straight to its category.
var exactCategories = map[string]Category{
	"tomato": Produce, "lettuce": Produce, "onion": Produce, "garlic": Produce, "carrot": Produce,
	"potato": Produce, "broccoli": Produce, "spinach": Produce, "cucumber": Produce,
	"mushroom": Produce, "apple": Produce, "banana": Produce, "lemon": Produce, "lime": Produce,
	"orange": Produce, "celery": Produce, "zucchini": Produce, "courgette": Produce,
	"pumpkin": Produce, "aubergine": Produce, "eggplant": Produce, "avocado": Produce,
	"shallot": Produce, "leek": Produce, "kale": Produce, "cabbage": Produce,
	"parsley": Produce, "coriander": Produce, "cilantro": Produce, "mint": Produce,
	"bell pepper": Produce, "red pepper": Produce, "green pepper": Produce,

	"chicken": MeatSeafood, "beef": MeatSeafood, "pork": MeatSeafood, "fish": MeatSeafood,
	"salmon": MeatSeafood, "tuna": MeatSeafood, "shrimp": MeatSeafood, "prawn": MeatSeafood,
	"cod": MeatSeafood, "turkey": MeatSeafood, "lamb": MeatSeafood, "bacon": MeatSeafood,
	"sausage": MeatSeafood, "mince": MeatSeafood, "ham": MeatSeafood,

	"milk": DairyEggs, "cheese": DairyEggs, "yogurt": DairyEggs, "butter": DairyEggs,
	"cream": DairyEggs, "egg": DairyEggs, "mozzarella": DairyEggs, "cheddar": DairyEggs,
	"parmesan": DairyEggs, "double cream": DairyEggs, "creme fraiche": DairyEggs,

	"bread": Bakery, "tortilla": Bakery, "pita": Bakery, "bun": Bakery, "bagel": Bakery,

	"flour": PantryDry, "rice": PantryDry, "pasta": PantryDry, "sugar": PantryDry,
	"oil": PantryDry, "olive oil": PantryDry, "vinegar": PantryDry, "honey": PantryDry,
	"jam": PantryDry, "cereal": PantryDry, "lentil": PantryDry, "bean": PantryDry,
	"chicken stock": PantryDry, "soy sauce": PantryDry, "peanut butter": PantryDry,
	"coconut milk": PantryDry, "baking powder": PantryDry, "baking soda": PantryDry,

	"salt": Spices, "pepper": Spices, "black pepper": Spices, "paprika": Spices, "cumin": Spices,
	"cinnamon": Spices, "ginger": Spices, "turmeric": Spices, "basil": Spices, "oregano": Spices,
	"thyme": Spices, "chili": Spices, "mustard": Spices, "nutmeg": Spices, "bay leaf": Spices,

	"water": Beverages, "wine": Beverages, "beer": Beverages, "coffee": Beverages, "tea": Beverages,
}

type keywordRule struct {
	keyword  string
	category Category
}

// keywordRules are probed in order and the first substring match wins.
// More specific keywords come before the generic ones they contain.
var keywordRules = []keywordRule{
	{"stock", PantryDry},
	{"broth", PantryDry},
	{"bouillon", PantryDry},
	{"peanut butter", PantryDry},
	{"coconut milk", PantryDry},
	{"coconut cream", PantryDry},
	{"sauce", PantryDry},
	{"paste", PantryDry},
	{"vinegar", PantryDry},
	{"noodle", PantryDry},
	{"butternut", Produce},
	{"squash", Produce},
	{"eggplant", Produce},
	{"bell pepper", Produce},
	{"chilli pepper", Produce},
	{"sweet potato", Produce},
	{"spring onion", Produce},
	{"peppercorn", Spices},
	{"pepper", Spices},
	{"powder", Spices},
	{"seasoning", Spices},

	{"chicken", MeatSeafood},
	{"beef", MeatSeafood},
	{"pork", MeatSeafood},
	{"lamb", MeatSeafood},
	{"bacon", MeatSeafood},
	{"sausage", MeatSeafood},
	{"salmon", MeatSeafood},
	{"tuna", MeatSeafood},
	{"shrimp", MeatSeafood},
	{"prawn", MeatSeafood},
	{"fish", MeatSeafood},
	{"turkey", MeatSeafood},

	{"cheese", DairyEggs},
	{"milk", DairyEggs},
	{"butter", DairyEggs},
	{"cream", DairyEggs},
	{"yogurt", DairyEggs},
	{"yoghurt", DairyEggs},
	{"egg", DairyEggs},

	{"bread", Bakery},
	{"tortilla", Bakery},
	{"baguette", Bakery},

	{"tomato", Produce},
	{"potato", Produce},
	{"onion", Produce},
	{"garlic", Produce},
	{"carrot", Produce},
	{"mushroom", Produce},
	{"lettuce", Produce},
	{"lemon", Produce},
	{"lime", Produce},
	{"apple", Produce},
	{"berry", Produce},
	{"leaf", Produce},

	{"flour", PantryDry},
	{"rice", PantryDry},
	{"pasta", PantryDry},
	{"spaghetti", PantryDry},
	{"sugar", PantryDry},
	{"oil", PantryDry},
	{"honey", PantryDry},
	{"bean", PantryDry},
	{"lentil", PantryDry},
	{"oat", PantryDry},

	{"salt", Spices},
	{"cumin", Spices},
	{"paprika", Spices},
	{"cinnamon", Spices},
	{"ginger", Spices},
	{"chili", Spices},
	{"chilli", Spices},
	{"herb", Spices},

	{"juice", Beverages},
	{"wine", Beverages},
}

// Categorize maps a canonical ingredient to its shopping category.
// Exact merge key lookup runs first, then keyword rules, then Other. It never fails.
func Categorize(c Canonical) Category {
	key := strings.TrimSpace(c.MergeKey)
	if key == "" {
		return Other
	}
	if cat, ok := exactCategories[key]; ok {
		return cat
	}
	for _, rule := range keywordRules {
		if strings.Contains(key, rule.keyword) {
			return rule.category
		}
	}
	return Other
}
