package analysis

import (
	"strings"

	"github.com/franckalain/foodfacts/internal/models"
)

var ecoPositiveKeywords = []string{
	"organic", "bio", "natural", "sustainable", "fair trade",
	"locally sourced", "free range", "grass fed", "wild caught",
	"plant based", "vegan", "vegetarian", "non-gmo", "pesticide free",
}

var ecoNegativeKeywords = []string{
	"palm oil", "artificial", "synthetic", "preservative",
	"colorant", "flavor enhancer", "stabilizer", "emulsifier",
	"high fructose corn syrup", "trans fat", "hydrogenated",
	"monosodium glutamate", "msg", "nitrate", "nitrite",
}

var ecoFriendlyCategories = []string{
	"fruits", "vegetables", "legumes", "grains", "cereals",
	"plant-based", "organic", "natural", "herbal",
}

var ecoUnfriendlyCategories = []string{
	"meat", "beef", "pork", "processed meat", "fast food",
	"snacks", "candy", "soft drinks", "energy drinks",
}

// EcoInput carries the product attributes the eco predictor looks at.
type EcoInput struct {
	Ingredients string
	Category    string
	NovaGroup   int
	Facts       models.NutrientFacts
}

// PredictEcoScore estimates an environmental grade A-E when the data
// source did not supply one. Rule-based: weighted contributions from
// ingredients, nutrition, processing level and product category are
// added to a neutral base of 50 and converted to a letter grade.
func PredictEcoScore(in EcoInput) models.Grade {
	s := 50.0
	s += ecoIngredientScore(in.Ingredients) * 0.4
	s += ecoNutritionScore(in.Facts) * 0.3
	s += ecoProcessingScore(in.NovaGroup, in.Ingredients) * 0.2
	s += ecoCategoryScore(in.Category) * 0.1
	return ecoGrade(s)
}

func ecoIngredientScore(ingredients string) float64 {
	if ingredients == "" {
		return 0
	}
	lower := strings.ToLower(ingredients)
	score := 0.0

	for _, k := range ecoPositiveKeywords {
		if strings.Contains(lower, k) {
			score += 10
		}
	}
	for _, k := range ecoNegativeKeywords {
		if strings.Contains(lower, k) {
			score -= 15
		}
	}

	// Shorter ingredient lists usually mean less processing.
	count := 0
	for _, part := range strings.Split(ingredients, ",") {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	switch {
	case count <= 5:
		score += 10
	case count <= 10:
		score += 5
	case count > 20:
		score -= 10
	}

	return clampF(score, -50, 50)
}

func ecoNutritionScore(f models.NutrientFacts) float64 {
	score := 0.0
	if f.Sugars != nil {
		switch {
		case *f.Sugars > 20:
			score -= 15
		case *f.Sugars > 10:
			score -= 8
		}
	}
	if f.Salt != nil {
		switch {
		case *f.Salt > 1.5:
			score -= 12
		case *f.Salt > 0.8:
			score -= 6
		}
	}
	if f.SaturatedFat != nil {
		switch {
		case *f.SaturatedFat > 10:
			score -= 10
		case *f.SaturatedFat > 5:
			score -= 5
		}
	}
	if f.Fiber != nil {
		switch {
		case *f.Fiber > 10:
			score += 15
		case *f.Fiber > 5:
			score += 8
		}
	}
	return clampF(score, -30, 30)
}

func ecoProcessingScore(novaGroup int, ingredients string) float64 {
	score := 0.0
	switch novaGroup {
	case 1:
		score += 20
	case 2:
		score += 10
	case 3:
		score -= 10
	case 4:
		score -= 25
	}

	lower := strings.ToLower(ingredients)
	processing := []struct {
		keywords []string
		weight   float64
	}{
		{[]string{"fresh", "raw", "whole", "unprocessed"}, 5},
		{[]string{"cooked", "dried", "frozen", "pasteurized"}, 2},
		{[]string{"refined", "enriched", "fortified", "modified"}, -3},
		{[]string{"artificial", "synthetic", "reconstituted", "hydrolyzed"}, -8},
	}
	for _, p := range processing {
		for _, k := range p.keywords {
			if strings.Contains(lower, k) {
				score += p.weight
			}
		}
	}
	return clampF(score, -40, 40)
}

func ecoCategoryScore(category string) float64 {
	if category == "" {
		return 0
	}
	lower := strings.ToLower(category)
	for _, c := range ecoFriendlyCategories {
		if strings.Contains(lower, c) {
			return 10
		}
	}
	for _, c := range ecoUnfriendlyCategories {
		if strings.Contains(lower, c) {
			return -15
		}
	}
	return 0
}

func ecoGrade(score float64) models.Grade {
	switch {
	case score >= 70:
		return models.GradeA
	case score >= 50:
		return models.GradeB
	case score >= 30:
		return models.GradeC
	case score >= 10:
		return models.GradeD
	}
	return models.GradeE
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
