package scoring

import (
	"testing"

	"github.com/foodhealth/food-health-tracker/internal/food"
)

func fptr(v float64) *float64 { return &v }

func iptr(v int) *int { return &v }

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		nutrition  *food.NutritionInfo
		grade      string
		novaGroup  *int
		additives  []string
		wantScore  float64
		wantRating string
	}{
		{
			name:       "all absent keeps baseline",
			wantScore:  100,
			wantRating: food.RatingExcellent,
		},
		{
			name: "values below thresholds keep baseline",
			nutrition: &food.NutritionInfo{
				EnergyKcal:   fptr(250),
				Sugars:       fptr(5),
				Sodium:       fptr(0.5),
				SaturatedFat: fptr(2),
				Fiber:        fptr(1),
				Proteins:     fptr(2),
			},
			wantScore:  100,
			wantRating: food.RatingExcellent,
		},
		{
			name: "energy and sugar penalties",
			nutrition: &food.NutritionInfo{
				EnergyKcal: fptr(500),
				Sugars:     fptr(40),
			},
			wantScore:  55,
			wantRating: food.RatingModerate,
		},
		{
			name:       "grade nova and additive penalties without nutrition",
			grade:      "e",
			novaGroup:  iptr(4),
			additives:  []string{"e100", "e200", "e300", "e400", "e500"},
			wantScore:  30,
			wantRating: food.RatingVeryPoor,
		},
		{
			name:       "grade is case-insensitive",
			grade:      "C",
			wantScore:  85,
			wantRating: food.RatingExcellent,
		},
		{
			name:       "unknown grade contributes nothing",
			grade:      "z",
			wantScore:  100,
			wantRating: food.RatingExcellent,
		},
		{
			name: "sodium takes precedence over salt",
			nutrition: &food.NutritionInfo{
				Sodium: fptr(2),
				Salt:   fptr(10),
			},
			wantScore:  85,
			wantRating: food.RatingExcellent,
		},
		{
			name: "salt applies when sodium below threshold",
			nutrition: &food.NutritionInfo{
				Sodium: fptr(0.5),
				Salt:   fptr(3),
			},
			wantScore:  97,
			wantRating: food.RatingExcellent,
		},
		{
			name: "fiber and protein bonuses are capped",
			nutrition: &food.NutritionInfo{
				Fiber:    fptr(20),
				Proteins: fptr(30),
			},
			grade:      "c",
			wantScore:  100,
			wantRating: food.RatingExcellent,
		},
		{
			name: "every penalty capped and score clamps to zero",
			nutrition: &food.NutritionInfo{
				EnergyKcal:   fptr(1000),
				Sugars:       fptr(50),
				Sodium:       fptr(3),
				SaturatedFat: fptr(20),
			},
			grade:      "e",
			novaGroup:  iptr(4),
			additives:  make([]string, 10),
			wantScore:  0,
			wantRating: food.RatingVeryPoor,
		},
		{
			name: "rounds to one decimal",
			nutrition: &food.NutritionInfo{
				Sugars: fptr(10.05),
			},
			wantScore:  99.9,
			wantRating: food.RatingExcellent,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score, rating := Calculate(tc.nutrition, tc.grade, tc.novaGroup, tc.additives)
			if score != tc.wantScore {
				t.Errorf("score = %v; want %v", score, tc.wantScore)
			}
			if rating != tc.wantRating {
				t.Errorf("rating = %q; want %q", rating, tc.wantRating)
			}
		})
	}
}

// The rating must always be the band implied by the score, for any input.
func TestCalculateRatingMatchesBand(t *testing.T) {
	grades := []string{"", "a", "b", "c", "d", "e"}
	novas := []*int{nil, iptr(1), iptr(2), iptr(3), iptr(4)}
	energies := []float64{0, 250, 400, 800}
	sugars := []float64{0, 15, 60}

	for _, grade := range grades {
		for _, nova := range novas {
			for _, energy := range energies {
				for _, sugar := range sugars {
					nutrition := &food.NutritionInfo{
						EnergyKcal: fptr(energy),
						Sugars:     fptr(sugar),
					}
					score, rating := Calculate(nutrition, grade, nova, nil)
					if score < 0 || score > 100 {
						t.Fatalf("score %v out of [0,100] for grade=%q nova=%v energy=%v sugar=%v",
							score, grade, nova, energy, sugar)
					}
					if want := food.RatingForScore(score); rating != want {
						t.Fatalf("rating %q disagrees with band %q for score %v", rating, want, score)
					}
				}
			}
		}
	}
}

// Increasing sugar above its threshold must never increase the score.
func TestCalculateSugarMonotonic(t *testing.T) {
	prev := 101.0
	for sugar := 10.0; sugar <= 40; sugar += 0.5 {
		nutrition := &food.NutritionInfo{
			EnergyKcal: fptr(350),
			Sugars:     fptr(sugar),
		}
		score, _ := Calculate(nutrition, "b", nil, nil)
		if score > prev {
			t.Fatalf("score increased from %v to %v when sugar rose to %v", prev, score, sugar)
		}
		prev = score
	}
}
