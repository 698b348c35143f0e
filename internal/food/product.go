package food

// UnknownProductName is used when the upstream record carries no display name.
const UnknownProductName = "Unknown Product"

// NutritionInfo holds per-100g nutrient values as reported by the upstream
// source. Pointer fields distinguish "not reported" from an explicit zero;
// missing values never contribute to scoring.
type NutritionInfo struct {
	EnergyKcal    *float64 `json:"energy_100g,omitempty"`
	Fat           *float64 `json:"fat_100g,omitempty"`
	SaturatedFat  *float64 `json:"saturated_fat_100g,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates_100g,omitempty"`
	Sugars        *float64 `json:"sugars_100g,omitempty"`
	Fiber         *float64 `json:"fiber_100g,omitempty"`
	Proteins      *float64 `json:"proteins_100g,omitempty"`
	Salt          *float64 `json:"salt_100g,omitempty"`
	Sodium        *float64 `json:"sodium_100g,omitempty"`
}

// Product is the canonical food product shape used across the service.
// HealthRating is always the band implied by HealthScore.
type Product struct {
	ID              string         `json:"id"`
	ProductName     string         `json:"product_name"`
	Brand           string         `json:"brand,omitempty"`
	ImageURL        string         `json:"image_url,omitempty"`
	Barcode         string         `json:"barcode,omitempty"`
	NutriScoreGrade string         `json:"nutriscore_grade,omitempty"`
	NovaGroup       *int           `json:"nova_group,omitempty"`
	Nutrition       *NutritionInfo `json:"nutrition,omitempty"`
	IngredientsText string         `json:"ingredients_text,omitempty"`
	HealthScore     float64        `json:"health_score"`
	HealthRating    string         `json:"health_rating"`
	Additives       []string       `json:"additives,omitempty"`
}

// Health rating bands.
const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingModerate  = "Moderate"
	RatingPoor      = "Poor"
	RatingVeryPoor  = "Very Poor"
)

// RatingForScore maps a health score in [0,100] to its rating band.
// Lower bounds are inclusive.
func RatingForScore(score float64) string {
	switch {
	case score >= 80:
		return RatingExcellent
	case score >= 65:
		return RatingGood
	case score >= 50:
		return RatingModerate
	case score >= 35:
		return RatingPoor
	default:
		return RatingVeryPoor
	}
}
