package analysis

import "strings"

// allergenKeywords maps an allergen class to the ingredient keywords
// that indicate its presence.
var allergenKeywords = []struct {
	id       string
	keywords []string
}{
	{"peanuts", []string{"peanut", "arachis oil"}},
	{"tree_nuts", []string{"almond", "walnut", "cashew", "pistachio", "hazelnut", "pecan", "macadamia"}},
	{"milk", []string{"milk", "whey", "casein", "lactose", "butter", "cream", "cheese"}},
	{"eggs", []string{"egg", "albumin", "ovalbumin"}},
	{"fish", []string{"fish", "tuna", "salmon", "anchovy"}},
	{"shellfish", []string{"shrimp", "prawn", "crab", "lobster", "shellfish"}},
	{"soy", []string{"soy", "soya", "tofu", "edamame"}},
	{"wheat", []string{"wheat", "bulgur", "farina"}},
	{"gluten", []string{"gluten", "wheat", "barley", "rye", "malt"}},
	{"sesame", []string{"sesame", "tahini"}},
}

// DetectAllergens scans ingredients text for the ten tracked allergen
// classes. Returns nil when the text is empty.
func DetectAllergens(ingredients string) []string {
	if ingredients == "" {
		return nil
	}
	lower := strings.ToLower(ingredients)

	var detected []string
	for _, a := range allergenKeywords {
		for _, k := range a.keywords {
			if strings.Contains(lower, k) {
				detected = append(detected, a.id)
				break
			}
		}
	}
	return detected
}
