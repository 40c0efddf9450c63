// Package score derives a 0-100 health score from nutrient facts and
// maps scores and letter grades to display bands.
package score

import (
	"github.com/franckalain/foodfacts/internal/models"
)

// Score estimates a health score in [0,100] for the given facts.
// The rule list is additive and order-independent: each penalty or
// bonus applies only when its field is present and past its threshold.
// Absent fields contribute nothing, so a record with no data scores a
// full 100 rather than being punished for incomplete source data.
func Score(f models.NutrientFacts) int {
	s := 100
	if f.Fat != nil && *f.Fat > 20 {
		s -= 15
	}
	if f.SaturatedFat != nil && *f.SaturatedFat > 5 {
		s -= 10
	}
	if f.Sugars != nil && *f.Sugars > 15 {
		s -= 20
	}
	if f.Salt != nil && *f.Salt > 1.5 {
		s -= 15
	}
	if f.Sodium != nil && *f.Sodium > 600 {
		s -= 10
	}
	if f.Fiber != nil && *f.Fiber > 3 {
		s += 10
	}
	if f.Proteins != nil && *f.Proteins > 10 {
		s += 5
	}
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// Color is a display color token for grades and score bands.
type Color string

const (
	ColorGreen  Color = "green"
	ColorLime   Color = "lime"
	ColorYellow Color = "yellow"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorGray   Color = "gray"
)

// GradeColor maps a letter grade to its display color. Unknown or
// out-of-range grades fall to gray rather than failing.
func GradeColor(g models.Grade) Color {
	switch g {
	case models.GradeA:
		return ColorGreen
	case models.GradeB:
		return ColorLime
	case models.GradeC:
		return ColorYellow
	case models.GradeD:
		return ColorOrange
	case models.GradeE:
		return ColorRed
	}
	return ColorGray
}

// Band is a labeled display band for a numeric score.
type Band struct {
	Label string `json:"label"`
	Color Color  `json:"color"`
}

// ScoreBand maps a score to its display band. Band lower bounds are
// inclusive: exactly 80 is Excellent, exactly 60 is Good.
func ScoreBand(score int) Band {
	switch {
	case score >= 80:
		return Band{Label: "Excellent", Color: ColorGreen}
	case score >= 60:
		return Band{Label: "Good", Color: ColorYellow}
	case score >= 40:
		return Band{Label: "Fair", Color: ColorOrange}
	}
	return Band{Label: "Poor", Color: ColorRed}
}

// GradeFromScore derives a letter grade when the data source did not
// supply one. Cut points follow the score bands, with the Poor band
// split between D and E.
func GradeFromScore(score int) models.Grade {
	switch {
	case score >= 80:
		return models.GradeA
	case score >= 60:
		return models.GradeB
	case score >= 40:
		return models.GradeC
	case score >= 20:
		return models.GradeD
	}
	return models.GradeE
}
