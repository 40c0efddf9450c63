// Package analysis derives dietary flags, allergen lists, additive
// profiles and processing estimates from a product's ingredients text.
package analysis

import "strings"

var nonVeganKeywords = []string{
	// dairy
	"milk", "cheese", "yogurt", "yoghurt", "butter", "cream", "ghee",
	"whey", "casein", "lactose",
	// eggs
	"egg", "albumin", "ovalbumin",
	// meat and fish derivatives
	"gelatin", "gelatine", "collagen", "isinglass", "fish oil",
	"anchovy", "tuna", "salmon",
	// insect and other animal derivatives
	"honey", "beeswax", "royal jelly", "carmine", "cochineal",
	"shellac", "lanolin", "tallow", "lard",
	"pepsin", "rennet",
}

// Plant-based phrases that contain an animal keyword and must be
// removed before matching: coconut milk is not milk.
var veganExceptions = []string{
	"coconut milk", "almond milk", "soy milk", "oat milk", "rice milk",
	"cashew milk", "hemp milk", "pea milk",
	"vegan cheese", "plant-based butter", "nutritional yeast",
	"cocoa butter", "shea butter", "peanut butter",
	"soy lecithin", "sunflower lecithin",
}

var nonVegetarianKeywords = []string{
	"meat", "beef", "pork", "lamb", "chicken", "turkey", "duck",
	"bacon", "ham", "sausage", "pepperoni", "salami",
	"fish", "tuna", "salmon", "cod", "sardine", "anchovy", "mackerel",
	"shrimp", "prawn", "crab", "lobster", "oyster", "mussel", "clam",
	"squid", "octopus", "fish oil", "fish sauce",
	"gelatin", "gelatine", "rennet", "pepsin", "carmine", "cochineal",
	"isinglass", "lard", "tallow",
}

var vegetarianExceptions = []string{
	"vegetable rennet", "microbial rennet", "plant-based",
	"imitation crab", "mock fish", "vegan fish",
}

var palmOilKeywords = []string{
	"palm oil", "palm kernel oil", "palm fruit oil", "palmitate",
	"sodium palmitate", "palmitic acid", "palm stearin", "palmolein",
	"cetyl palmitate", "octyl palmitate", "palmityl alcohol",
	"elaeis guineensis", "hydrogenated palm glycerides",
	"sodium palm kernelate", "palmitoyl",
}

var palmFreeExceptions = []string{
	"olive oil", "coconut oil", "sunflower oil", "canola oil",
	"soybean oil", "corn oil", "avocado oil", "peanut oil",
	"sesame oil", "grape seed oil", "almond oil", "safflower oil",
}

// containsAfterStripping lowercases text, removes the exception
// phrases, then reports whether any keyword remains.
func containsAfterStripping(text string, exceptions, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, e := range exceptions {
		lower = strings.ReplaceAll(lower, e, "")
	}
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Vegan reports whether the ingredients suggest a vegan product.
// Returns nil when there is no ingredients text to judge from.
func Vegan(ingredients string) *bool {
	if ingredients == "" {
		return nil
	}
	v := !containsAfterStripping(ingredients, veganExceptions, nonVeganKeywords)
	return &v
}

// Vegetarian reports whether the ingredients suggest a vegetarian
// product (dairy and eggs allowed). Nil when unknown.
func Vegetarian(ingredients string) *bool {
	if ingredients == "" {
		return nil
	}
	v := !containsAfterStripping(ingredients, vegetarianExceptions, nonVegetarianKeywords)
	return &v
}

// PalmOilFree reports whether the ingredients avoid palm oil and its
// derivatives. Nil when unknown.
func PalmOilFree(ingredients string) *bool {
	if ingredients == "" {
		return nil
	}
	v := !containsAfterStripping(ingredients, palmFreeExceptions, palmOilKeywords)
	return &v
}
