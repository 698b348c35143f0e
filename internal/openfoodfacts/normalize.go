package openfoodfacts

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/foodhealth/food-health-tracker/internal/food"
	"github.com/foodhealth/food-health-tracker/internal/scoring"
)

// rawProduct is the subset of an Open Food Facts record the service reads.
// Nutriments stays untyped because the API mixes numbers and numeric strings
// across records of different ages.
type rawProduct struct {
	Code            string         `json:"code"`
	ProductName     string         `json:"product_name"`
	Brands          string         `json:"brands"`
	ImageURL        string         `json:"image_url"`
	NutriScoreGrade string         `json:"nutriscore_grade"`
	NovaGroup       any            `json:"nova_group"`
	Nutriments      map[string]any `json:"nutriments"`
	IngredientsText string         `json:"ingredients_text"`
	AdditivesTags   []string       `json:"additives_tags"`
}

// Additive tags are kept only when they carry one of these language prefixes;
// the prefix is stripped from the stored code.
var additivePrefixes = []string{"en:"}

// Normalize maps a raw upstream record into the canonical Product, computing
// its health score. It never fails: every malformed or missing field degrades
// to its documented default.
func Normalize(raw rawProduct) food.Product {
	nutrition := extractNutrition(raw.Nutriments)
	additives := extractAdditives(raw.AdditivesTags)
	novaGroup := extractNovaGroup(raw.NovaGroup)

	score, rating := scoring.Calculate(nutrition, raw.NutriScoreGrade, novaGroup, additives)

	id := raw.Code
	if id == "" {
		id = uuid.NewString()
	}
	name := raw.ProductName
	if name == "" {
		name = food.UnknownProductName
	}

	return food.Product{
		ID:              id,
		ProductName:     name,
		Brand:           raw.Brands,
		ImageURL:        raw.ImageURL,
		Barcode:         raw.Code,
		NutriScoreGrade: raw.NutriScoreGrade,
		NovaGroup:       novaGroup,
		Nutrition:       nutrition,
		IngredientsText: raw.IngredientsText,
		HealthScore:     score,
		HealthRating:    rating,
		Additives:       additives,
	}
}

func extractNutrition(nutriments map[string]any) *food.NutritionInfo {
	if len(nutriments) == 0 {
		return nil
	}
	return &food.NutritionInfo{
		EnergyKcal:    extractFloat(nutriments, "energy-kcal_100g"),
		Fat:           extractFloat(nutriments, "fat_100g"),
		SaturatedFat:  extractFloat(nutriments, "saturated-fat_100g"),
		Carbohydrates: extractFloat(nutriments, "carbohydrates_100g"),
		Sugars:        extractFloat(nutriments, "sugars_100g"),
		Fiber:         extractFloat(nutriments, "fiber_100g"),
		Proteins:      extractFloat(nutriments, "proteins_100g"),
		Salt:          extractFloat(nutriments, "salt_100g"),
		Sodium:        extractFloat(nutriments, "sodium_100g"),
	}
}

// extractFloat coerces a nutriments value to a float, tolerating numeric
// strings. Absent or unparseable values stay nil.
func extractFloat(m map[string]any, key string) *float64 {
	switch x := m[key].(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return &x
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return &f
		}
	}
	return nil
}

// extractNovaGroup tolerates the number-or-string encoding of nova_group and
// keeps only the defined groups 1-4.
func extractNovaGroup(v any) *int {
	var group int
	switch x := v.(type) {
	case float64:
		group = int(x)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return nil
		}
		group = n
	default:
		return nil
	}
	if group < 1 || group > 4 {
		return nil
	}
	return &group
}

// extractAdditives keeps recognized-prefix additive tags with the prefix
// stripped, preserving order and duplicates.
func extractAdditives(tags []string) []string {
	var additives []string
	for _, tag := range tags {
		for _, prefix := range additivePrefixes {
			if strings.HasPrefix(tag, prefix) {
				additives = append(additives, strings.TrimPrefix(tag, prefix))
				break
			}
		}
	}
	return additives
}
