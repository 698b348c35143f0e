package services

import (
	"context"
	"strings"

	"github.com/foodhealth/food-health-tracker/internal/apperrors"
	"github.com/foodhealth/food-health-tracker/internal/food"
)

const (
	// MaxSearchLimit bounds a single search request.
	MaxSearchLimit = 50
	// regionalPageSize caps how many records the regional endpoint is asked for.
	regionalPageSize = 15
	// regionalSufficientCount is the regional result count at which the global
	// endpoint is not consulted at all.
	regionalSufficientCount = 5
)

// SourceClient is one upstream food-data endpoint. Implementations absorb
// their own failures: "no data" and "upstream down" are both an empty result.
type SourceClient interface {
	Search(ctx context.Context, query string, limit int) []food.Product
	GetByBarcode(ctx context.Context, barcode string) (*food.Product, bool)
}

// ProductCache is an optional read-through cache for barcode lookups.
type ProductCache interface {
	Get(ctx context.Context, barcode string) (*food.Product, bool)
	Set(ctx context.Context, barcode string, product *food.Product)
}

// BrandRule marks brands to surface ahead of generic results. Matching is a
// case-insensitive substring test on the product brand. Higher priority tiers
// are emitted first; within a tier the merged result order is preserved.
type BrandRule struct {
	Match    string
	Priority int
}

// DefaultBrandRules prefers well-known regional brands over generic global
// matches.
var DefaultBrandRules = []BrandRule{
	{Match: "amul", Priority: 1},
	{Match: "britannia", Priority: 1},
	{Match: "parle", Priority: 1},
	{Match: "haldiram", Priority: 1},
	{Match: "mdh", Priority: 1},
	{Match: "everest", Priority: 1},
	{Match: "tata", Priority: 1},
	{Match: "nestle india", Priority: 1},
	{Match: "itc", Priority: 1},
	{Match: "dabur", Priority: 1},
	{Match: "patanjali", Priority: 1},
}

// foodCategories is the fixed vocabulary exposed for UI hinting; no network
// call is involved.
var foodCategories = []string{
	"dal", "rice", "wheat", "atta", "roti", "chapati", "naan", "paratha",
	"curry", "masala", "spices", "ghee", "oil", "pickle", "chutney",
	"sweets", "mithai", "laddu", "gulab jamun", "rasgulla", "jalebi",
	"namkeen", "bhujia", "mixture", "sev", "papad", "poha", "upma",
	"samosa", "kachori", "biscuit", "rusk", "tea", "chai", "coffee",
	"lassi", "buttermilk", "yogurt", "curd", "paneer", "milk", "coconut",
}

// FoodService resolves products across a regional and a global upstream
// endpoint, regional first. It never returns an error for upstream
// availability; only malformed requests and a missing barcode are surfaced.
type FoodService struct {
	regional   SourceClient
	global     SourceClient
	cache      ProductCache
	brandRules []BrandRule
}

// NewFoodService creates a food resolution service. cache may be nil.
func NewFoodService(regional, global SourceClient, cache ProductCache) *FoodService {
	return &FoodService{
		regional:   regional,
		global:     global,
		cache:      cache,
		brandRules: DefaultBrandRules,
	}
}

// SearchProducts resolves a free-text query into an ordered, deduplicated
// list of at most limit products.
func (s *FoodService) SearchProducts(ctx context.Context, query string, limit int) ([]food.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.NewValidationError("query must not be empty")
	}
	if limit <= 0 || limit > MaxSearchLimit {
		return nil, apperrors.NewValidationError("limit must be between 1 and 50").WithContext("limit", limit)
	}

	regional := s.regional.Search(ctx, query, min(limit, regionalPageSize))
	if len(regional) >= regionalSufficientCount {
		return regional[:min(limit, len(regional))], nil
	}

	global := s.global.Search(ctx, query, limit)

	merged := make([]food.Product, 0, len(regional)+len(global))
	merged = append(merged, regional...)
	merged = append(merged, global...)

	return rankProducts(dedupeByID(merged), s.brandRules, limit), nil
}

// GetProductByBarcode looks a product up by barcode, regional endpoint first.
// A product found upstream is cached; a product found nowhere is a not-found
// error.
func (s *FoodService) GetProductByBarcode(ctx context.Context, barcode string) (*food.Product, error) {
	if strings.TrimSpace(barcode) == "" {
		return nil, apperrors.NewValidationError("barcode must not be empty")
	}

	if s.cache != nil {
		if product, ok := s.cache.Get(ctx, barcode); ok {
			return product, nil
		}
	}

	product, ok := s.regional.GetByBarcode(ctx, barcode)
	if !ok {
		product, ok = s.global.GetByBarcode(ctx, barcode)
	}
	if !ok {
		return nil, apperrors.NewNotFoundError("product").WithContext("barcode", barcode)
	}

	if s.cache != nil {
		s.cache.Set(ctx, barcode, product)
	}
	return product, nil
}

// Categories returns the fixed food category vocabulary.
func (s *FoodService) Categories() []string {
	categories := make([]string, len(foodCategories))
	copy(categories, foodCategories)
	return categories
}

// dedupeByID keeps the first occurrence of each product id.
func dedupeByID(products []food.Product) []food.Product {
	seen := make(map[string]bool, len(products))
	deduped := products[:0:0]
	for _, p := range products {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		deduped = append(deduped, p)
	}
	return deduped
}

// rankProducts emits products in descending brand-rule priority tiers,
// preserving input order within each tier, bounded by limit. Products
// matching no rule form the implicit priority-0 tier. Re-ranking an already
// ranked list yields the same list.
func rankProducts(products []food.Product, rules []BrandRule, limit int) []food.Product {
	priorities := make([]int, len(products))
	tiers := []int{0}
	for i, p := range products {
		priorities[i] = brandPriority(p.Brand, rules)
		if !containsInt(tiers, priorities[i]) {
			tiers = append(tiers, priorities[i])
		}
	}
	// Descending tier order; the tier list is tiny.
	for i := 0; i < len(tiers); i++ {
		for j := i + 1; j < len(tiers); j++ {
			if tiers[j] > tiers[i] {
				tiers[i], tiers[j] = tiers[j], tiers[i]
			}
		}
	}

	ranked := make([]food.Product, 0, min(limit, len(products)))
	for _, tier := range tiers {
		for i, p := range products {
			if len(ranked) >= limit {
				return ranked
			}
			if priorities[i] == tier {
				ranked = append(ranked, p)
			}
		}
	}
	return ranked
}

// brandPriority returns the highest priority among rules matching the brand,
// or 0 when none match.
func brandPriority(brand string, rules []BrandRule) int {
	if brand == "" {
		return 0
	}
	lowered := strings.ToLower(brand)
	priority := 0
	for _, rule := range rules {
		if rule.Priority > priority && strings.Contains(lowered, rule.Match) {
			priority = rule.Priority
		}
	}
	return priority
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
