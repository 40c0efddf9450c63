package analysis

import (
	"testing"

	"github.com/franckalain/foodfacts/internal/models"
)

func TestPredictNovaGroup(t *testing.T) {
	tests := []struct {
		name        string
		ingredients string
		want        int
	}{
		{"empty assumes unprocessed", "", 1},
		{"single ingredient", "rolled oats", 1},
		{"ultra-processed indicator", "sugar, hydrogenated vegetable oil", 4},
		{"processed indicator", "tomatoes, salted water", 3},
		{"few ingredients", "flour, water, yeast, salt", 2},
		{"long list", "a, b, c, d, e, f, g, h, i, j", 3},
		{"very long list", "a, b, c, d, e, f, g, h, i, j, k, l, m, n, o, p", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PredictNovaGroup(tt.ingredients); got != tt.want {
				t.Errorf("PredictNovaGroup(%q) = %d, want %d", tt.ingredients, got, tt.want)
			}
		})
	}
}

func TestNovaDescription(t *testing.T) {
	if NovaDescription(4) != "Ultra-processed foods" {
		t.Error("wrong description for group 4")
	}
	if NovaDescription(0) != "Not specified" {
		t.Error("unknown group should map to Not specified")
	}
	if NovaDescription(99) != "Not specified" {
		t.Error("out-of-range group should map to Not specified")
	}
}

func TestPredictEcoScoreNeutral(t *testing.T) {
	// No signal at all: neutral base maps to B.
	got := PredictEcoScore(EcoInput{})
	if got != models.GradeB {
		t.Errorf("PredictEcoScore(empty) = %q, want B", got)
	}
}

func TestPredictEcoScoreOrganicBeatsUltraProcessed(t *testing.T) {
	good := PredictEcoScore(EcoInput{
		Ingredients: "organic oats, organic honey",
		Category:    "cereals",
		NovaGroup:   1,
	})
	bad := PredictEcoScore(EcoInput{
		Ingredients: "sugar, palm oil, artificial flavor, preservative, emulsifier",
		Category:    "snacks",
		NovaGroup:   4,
		Facts: models.NutrientFacts{
			Sugars:       models.Float(40),
			SaturatedFat: models.Float(15),
		},
	})
	if !betterGrade(good, bad) {
		t.Errorf("expected %q better than %q", good, bad)
	}
}

func betterGrade(a, b models.Grade) bool {
	order := map[models.Grade]int{
		models.GradeA: 0, models.GradeB: 1, models.GradeC: 2,
		models.GradeD: 3, models.GradeE: 4,
	}
	return order[a] < order[b]
}

func TestPredictEcoScoreAlwaysValid(t *testing.T) {
	inputs := []EcoInput{
		{},
		{Ingredients: "organic, organic, organic, bio, natural"},
		{Ingredients: "palm oil, artificial, synthetic, msg, nitrite", NovaGroup: 4},
		{Category: "fast food"},
	}
	for _, in := range inputs {
		if g := PredictEcoScore(in); !g.Valid() {
			t.Errorf("PredictEcoScore(%+v) produced invalid grade %q", in, g)
		}
	}
}
