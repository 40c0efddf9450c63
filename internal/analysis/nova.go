package analysis

import "strings"

// ultraProcessedIndicators mark NOVA group 4 formulations.
var ultraProcessedIndicators = []string{
	"high fructose corn syrup", "hydrogenated", "modified starch",
	"artificial flavor", "artificial colour", "artificial color",
	"preservative", "emulsifier", "stabilizer", "thickener",
	"anti-caking agent", "flavor enhancer", "sweetener",
	"acidity regulator", "monosodium glutamate", "msg",
	"sodium benzoate", "potassium sorbate", "calcium propionate",
}

// processedIndicators mark NOVA group 3 products.
var processedIndicators = []string{
	"added sugar", "added salt", "oil", "vinegar",
	"canned", "smoked", "cured", "salted",
}

// PredictNovaGroup estimates the NOVA processing group (1-4) from
// ingredients text. Indicator keywords win over the ingredient-count
// heuristic; with no text at all the product is assumed unprocessed.
func PredictNovaGroup(ingredients string) int {
	if ingredients == "" {
		return 1
	}
	lower := strings.ToLower(ingredients)

	for _, ind := range ultraProcessedIndicators {
		if strings.Contains(lower, ind) {
			return 4
		}
	}
	for _, ind := range processedIndicators {
		if strings.Contains(lower, ind) {
			return 3
		}
	}

	count := 0
	for _, part := range strings.Split(ingredients, ",") {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	switch {
	case count > 15:
		return 4
	case count > 8:
		return 3
	case count > 3:
		return 2
	}
	return 1
}

// NovaDescription returns the display name of a NOVA group.
func NovaDescription(group int) string {
	switch group {
	case 1:
		return "Unprocessed or minimally processed foods"
	case 2:
		return "Processed culinary ingredients"
	case 3:
		return "Processed foods"
	case 4:
		return "Ultra-processed foods"
	}
	return "Not specified"
}
