package server

import (
	"github.com/franckalain/foodfacts/internal/analysis"
	"github.com/franckalain/foodfacts/internal/models"
	"github.com/franckalain/foodfacts/internal/score"
)

// EnrichProduct fills in everything the lookup source left blank: the
// health score is always recomputed from the nutrient facts, and
// grades, NOVA group, dietary flags and allergens are predicted only
// when the source did not supply them.
func EnrichProduct(p *models.Product) {
	p.HealthScore = score.Score(p.Facts)

	if p.NutriScore == models.GradeUnknown {
		p.NutriScore = score.GradeFromScore(p.HealthScore)
	}

	if p.Ingredients != "" {
		if p.Vegan == nil {
			p.Vegan = analysis.Vegan(p.Ingredients)
		}
		if p.Vegetarian == nil {
			p.Vegetarian = analysis.Vegetarian(p.Ingredients)
		}
		if p.PalmOilFree == nil {
			p.PalmOilFree = analysis.PalmOilFree(p.Ingredients)
		}
		if len(p.Allergens) == 0 {
			p.Allergens = analysis.DetectAllergens(p.Ingredients)
		}
		if p.NovaGroup == 0 {
			p.NovaGroup = analysis.PredictNovaGroup(p.Ingredients)
		}
	}

	if p.EcoScore == models.GradeUnknown {
		p.EcoScore = analysis.PredictEcoScore(analysis.EcoInput{
			Ingredients: p.Ingredients,
			Category:    p.Category,
			NovaGroup:   p.NovaGroup,
			Facts:       p.Facts,
		})
	}
}

// ProductView is the product record plus the derived display data the
// client renders alongside it.
type ProductView struct {
	*models.Product

	ScoreBand       score.Band              `json:"score_band"`
	NutriScoreColor score.Color             `json:"nutriscore_color"`
	EcoScoreColor   score.Color             `json:"ecoscore_color"`
	NovaDescription string                  `json:"nova_description,omitempty"`
	Additives       analysis.AdditiveReport `json:"additives"`
	Recommendations []string                `json:"recommendations"`
}

// NewProductView computes the display data for a stored product.
func NewProductView(p *models.Product) *ProductView {
	report := analysis.AnalyzeAdditives(p.Ingredients)
	return &ProductView{
		Product:         p,
		ScoreBand:       score.ScoreBand(p.HealthScore),
		NutriScoreColor: score.GradeColor(p.NutriScore),
		EcoScoreColor:   score.GradeColor(p.EcoScore),
		NovaDescription: analysis.NovaDescription(p.NovaGroup),
		Additives:       report,
		Recommendations: analysis.AdditiveRecommendations(report),
	}
}
