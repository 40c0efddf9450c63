package models

import (
	"math"
	"strconv"
)

// NutrientFacts holds per-100g nutrient quantities for a product.
// Every field is independently optional: nil means the data source did
// not report the value, which is not the same as zero.
type NutrientFacts struct {
	EnergyKcal    *float64 `json:"energy_kcal_100g,omitempty"`
	Fat           *float64 `json:"fat_100g,omitempty"`
	SaturatedFat  *float64 `json:"saturated_fat_100g,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates_100g,omitempty"`
	Sugars        *float64 `json:"sugars_100g,omitempty"`
	Fiber         *float64 `json:"fiber_100g,omitempty"`
	Proteins      *float64 `json:"proteins_100g,omitempty"`
	Salt          *float64 `json:"salt_100g,omitempty"`
	Sodium        *float64 `json:"sodium_100g,omitempty"` // mg
}

// FactsFromNutriments builds NutrientFacts from an Open Food Facts
// nutriments map. Values arrive as numbers or numeric strings depending
// on the record; anything else is treated as absent.
func FactsFromNutriments(nutriments map[string]any) NutrientFacts {
	return NutrientFacts{
		EnergyKcal:    nutrimentValue(nutriments, "energy-kcal_100g"),
		Fat:           nutrimentValue(nutriments, "fat_100g"),
		SaturatedFat:  nutrimentValue(nutriments, "saturated-fat_100g"),
		Carbohydrates: nutrimentValue(nutriments, "carbohydrates_100g"),
		Sugars:        nutrimentValue(nutriments, "sugars_100g"),
		Fiber:         nutrimentValue(nutriments, "fiber_100g"),
		Proteins:      nutrimentValue(nutriments, "proteins_100g"),
		Salt:          nutrimentValue(nutriments, "salt_100g"),
		Sodium:        nutrimentValue(nutriments, "sodium_100g"),
	}
}

func nutrimentValue(m map[string]any, key string) *float64 {
	v, ok := m[key]
	if !ok {
		return nil
	}
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return &x
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	}
	return nil
}

// Float is a convenience for building optional nutrient values in tests
// and callers that already hold a concrete number.
func Float(v float64) *float64 { return &v }
