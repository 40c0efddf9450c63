package score

import (
	"testing"

	"github.com/franckalain/foodfacts/internal/models"
)

func TestScoreAllAbsent(t *testing.T) {
	if got := Score(models.NutrientFacts{}); got != 100 {
		t.Errorf("Score(empty) = %d, want 100", got)
	}
}

func TestScoreScenarios(t *testing.T) {
	tests := []struct {
		name  string
		facts models.NutrientFacts
		want  int
	}{
		{
			name: "fat and sugar penalties with fiber bonus",
			facts: models.NutrientFacts{
				Fat:    models.Float(25),
				Sugars: models.Float(20),
				Fiber:  models.Float(5),
			},
			want: 75,
		},
		{
			name: "all penalties triggered",
			facts: models.NutrientFacts{
				Fat:          models.Float(30),
				SaturatedFat: models.Float(10),
				Sugars:       models.Float(40),
				Salt:         models.Float(3),
				Sodium:       models.Float(1200),
			},
			want: 30,
		},
		{
			name: "all bonuses, no penalties, clamped at 100",
			facts: models.NutrientFacts{
				Fiber:    models.Float(8),
				Proteins: models.Float(20),
			},
			want: 100,
		},
		{
			name: "values at thresholds are not penalized",
			facts: models.NutrientFacts{
				Fat:          models.Float(20),
				SaturatedFat: models.Float(5),
				Sugars:       models.Float(15),
				Salt:         models.Float(1.5),
				Sodium:       models.Float(600),
				Fiber:        models.Float(3),
				Proteins:     models.Float(10),
			},
			want: 100,
		},
		{
			name: "zero values are present but below thresholds",
			facts: models.NutrientFacts{
				Fat:    models.Float(0),
				Sugars: models.Float(0),
			},
			want: 100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.facts); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	// Exhaustive over presence combinations of all seven scored fields.
	for mask := 0; mask < 1<<7; mask++ {
		var f models.NutrientFacts
		if mask&1 != 0 {
			f.Fat = models.Float(100)
		}
		if mask&2 != 0 {
			f.SaturatedFat = models.Float(100)
		}
		if mask&4 != 0 {
			f.Sugars = models.Float(100)
		}
		if mask&8 != 0 {
			f.Salt = models.Float(100)
		}
		if mask&16 != 0 {
			f.Sodium = models.Float(10000)
		}
		if mask&32 != 0 {
			f.Fiber = models.Float(100)
		}
		if mask&64 != 0 {
			f.Proteins = models.Float(100)
		}
		got := Score(f)
		if got < 0 || got > 100 {
			t.Fatalf("Score out of range for mask %b: %d", mask, got)
		}
	}
}

// Crossing a penalty threshold never raises the score; crossing a
// bonus threshold never lowers it.
func TestScoreMonotonic(t *testing.T) {
	base := models.NutrientFacts{
		Fat:      models.Float(10),
		Sugars:   models.Float(10),
		Fiber:    models.Float(1),
		Proteins: models.Float(5),
	}
	baseScore := Score(base)

	over := base
	over.Sugars = models.Float(50)
	if Score(over) > baseScore {
		t.Error("raising sugars past threshold increased score")
	}

	over = base
	over.Fiber = models.Float(10)
	if Score(over) < baseScore {
		t.Error("raising fiber past threshold decreased score")
	}
}

func TestGradeColor(t *testing.T) {
	tests := []struct {
		grade models.Grade
		want  Color
	}{
		{models.GradeA, ColorGreen},
		{models.GradeB, ColorLime},
		{models.GradeC, ColorYellow},
		{models.GradeD, ColorOrange},
		{models.GradeE, ColorRed},
		{models.GradeUnknown, ColorGray},
		{models.Grade("Z"), ColorGray},
		{models.Grade("aa"), ColorGray},
	}
	for _, tt := range tests {
		if got := GradeColor(tt.grade); got != tt.want {
			t.Errorf("GradeColor(%q) = %q, want %q", tt.grade, got, tt.want)
		}
	}
}

func TestScoreBand(t *testing.T) {
	tests := []struct {
		score     int
		wantLabel string
		wantColor Color
	}{
		{100, "Excellent", ColorGreen},
		{80, "Excellent", ColorGreen},
		{79, "Good", ColorYellow},
		{60, "Good", ColorYellow},
		{59, "Fair", ColorOrange},
		{40, "Fair", ColorOrange},
		{39, "Poor", ColorRed},
		{0, "Poor", ColorRed},
		{-5, "Poor", ColorRed},
		{150, "Excellent", ColorGreen},
	}
	for _, tt := range tests {
		got := ScoreBand(tt.score)
		if got.Label != tt.wantLabel || got.Color != tt.wantColor {
			t.Errorf("ScoreBand(%d) = %+v, want {%s %s}", tt.score, got, tt.wantLabel, tt.wantColor)
		}
	}
}

func TestGradeFromScore(t *testing.T) {
	tests := []struct {
		score int
		want  models.Grade
	}{
		{100, models.GradeA},
		{80, models.GradeA},
		{79, models.GradeB},
		{60, models.GradeB},
		{59, models.GradeC},
		{40, models.GradeC},
		{39, models.GradeD},
		{20, models.GradeD},
		{19, models.GradeE},
		{0, models.GradeE},
	}
	for _, tt := range tests {
		if got := GradeFromScore(tt.score); got != tt.want {
			t.Errorf("GradeFromScore(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
