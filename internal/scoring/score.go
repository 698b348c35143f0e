package scoring

import (
	"math"
	"strings"

	"github.com/foodhealth/food-health-tracker/internal/food"
)

// Nutri-Score grade adjustments, applied case-insensitively.
// Unknown grades contribute nothing.
var gradeAdjustments = map[string]float64{
	"a": 0,
	"b": -5,
	"c": -15,
	"d": -25,
	"e": -35,
}

// NOVA processing-level adjustments (1 = unprocessed, 4 = ultra-processed).
var novaAdjustments = map[int]float64{
	1: 0,
	2: -5,
	3: -15,
	4: -25,
}

// Calculate derives a health score in [0,100] and its rating band from a
// nutrient profile plus auxiliary signals. Pure and total: absent inputs mean
// "no adjustment", never an error. Each penalty or bonus is capped
// independently before summing against the baseline of 100.
func Calculate(nutrition *food.NutritionInfo, grade string, novaGroup *int, additives []string) (float64, string) {
	score := 100.0

	if nutrition != nil {
		if v := nutrition.EnergyKcal; v != nil && *v > 300 {
			score -= math.Min(30, (*v-300)/10)
		}
		if v := nutrition.Sugars; v != nil && *v > 10 {
			score -= math.Min(25, (*v-10)*2)
		}
		// Sodium takes precedence over salt; the two are never both applied.
		if v := nutrition.Sodium; v != nil && *v > 1 {
			score -= math.Min(20, (*v-1)*15)
		} else if v := nutrition.Salt; v != nil && *v > 2.5 {
			score -= math.Min(20, (*v-2.5)*6)
		}
		if v := nutrition.SaturatedFat; v != nil && *v > 5 {
			score -= math.Min(20, (*v-5)*2)
		}
		if v := nutrition.Fiber; v != nil && *v > 3 {
			score += math.Min(15, (*v-3)*3)
		}
		if v := nutrition.Proteins; v != nil && *v > 10 {
			score += math.Min(10, (*v-10)*1)
		}
	}

	if grade != "" {
		score += gradeAdjustments[strings.ToLower(grade)]
	}
	if novaGroup != nil {
		score += novaAdjustments[*novaGroup]
	}
	if n := len(additives); n > 0 {
		score -= math.Min(15, float64(n)*2)
	}

	score = math.Max(0, math.Min(100, score))
	score = math.Round(score*10) / 10

	return score, food.RatingForScore(score)
}
