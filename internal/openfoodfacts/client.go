package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/foodhealth/food-health-tracker/internal/apperrors"
	"github.com/foodhealth/food-health-tracker/internal/food"
	"github.com/foodhealth/food-health-tracker/internal/logger"
)

// productFields is the field projection requested from the API.
const productFields = "code,product_name,brands,image_url,nutriscore_grade,nova_group,nutriments,ingredients_text,additives_tags,countries_tags"

const defaultRequestTimeout = 10 * time.Second

// queryRewrite maps a shorthand term users actually type to phrasing with
// better upstream recall.
type queryRewrite struct {
	term     string
	expanded string
}

// queryRewrites is an explicitly ordered table: the first entry whose term
// appears in the query wins, so order matters for queries hitting several
// terms at once.
var queryRewrites = []queryRewrite{
	{"atta", "wheat flour atta"},
	{"dal", "lentils dal"},
	{"chawal", "rice basmati"},
	{"ghee", "clarified butter ghee"},
	{"masala", "spice masala mix"},
	{"namkeen", "savory snacks namkeen"},
	{"mithai", "indian sweets"},
	{"chai", "tea chai"},
	{"lassi", "yogurt drink lassi"},
	{"papad", "papadum crispy"},
	{"pickle", "indian pickle achar"},
}

// EnhanceQuery rewrites recognized shorthand to its expanded phrase. The
// query is returned unmodified when no table entry matches.
func EnhanceQuery(query string) string {
	lowered := strings.ToLower(query)
	for _, rw := range queryRewrites {
		if strings.Contains(lowered, rw.term) {
			return rw.expanded
		}
	}
	return query
}

// Config binds a Client to one upstream endpoint.
type Config struct {
	BaseURL string
	// Country filter applied to search requests; empty for the global endpoint.
	Country string
	// Timeout per upstream request. Defaults to 10s.
	Timeout time.Duration
	// RequestsPerSecond throttles outbound calls to the public API.
	// Defaults to 5.
	RequestsPerSecond float64
}

// Client queries one Open Food Facts endpoint. Failures of any kind are
// absorbed into empty results: the caller cannot distinguish "no data" from a
// transient upstream failure, which is the contract of this layer.
type Client struct {
	baseURL string
	country string
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		country: cfg.Country,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Search performs a text search and returns normalized products. Network,
// HTTP and parse failures are logged and reported as an empty slice.
func (c *Client) Search(ctx context.Context, query string, limit int) []food.Product {
	params := url.Values{}
	params.Set("search_terms", EnhanceQuery(query))
	params.Set("page_size", strconv.Itoa(limit))
	if c.country != "" {
		params.Set("countries", c.country)
	}
	params.Set("fields", productFields)

	var parsed struct {
		Products []rawProduct `json:"products"`
	}
	if !c.get(ctx, c.baseURL+"/search?"+params.Encode(), &parsed) {
		return nil
	}

	products := make([]food.Product, 0, len(parsed.Products))
	for _, raw := range parsed.Products {
		products = append(products, Normalize(raw))
	}
	return products
}

// GetByBarcode fetches a single product. The second return is false when the
// product does not exist upstream or the call failed.
func (c *Client) GetByBarcode(ctx context.Context, barcode string) (*food.Product, bool) {
	params := url.Values{}
	params.Set("fields", productFields)

	var parsed struct {
		Status  int         `json:"status"`
		Product *rawProduct `json:"product"`
	}
	if !c.get(ctx, c.baseURL+"/product/"+url.PathEscape(barcode)+"?"+params.Encode(), &parsed) {
		return nil, false
	}
	if parsed.Status != 1 || parsed.Product == nil {
		return nil, false
	}

	product := Normalize(*parsed.Product)
	return &product, true
}

// get issues a rate-limited GET and decodes the JSON body into out,
// reporting success. All failure causes are logged at warn and collapse to
// false.
func (c *Client) get(ctx context.Context, rawURL string, out any) bool {
	if err := c.limiter.Wait(ctx); err != nil {
		logger.Warn("upstream request canceled while rate limited", "url", c.baseURL, "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		logger.Warn("failed to build upstream request", "url", rawURL, "error", err)
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.warn("upstream request failed", classifyFailure(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.warn("upstream returned non-2xx status",
			apperrors.NewExternalAPIError(fmt.Errorf("unexpected status %d", resp.StatusCode), upstreamName))
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.warn("failed to decode upstream response", apperrors.NewExternalAPIError(err, upstreamName))
		return false
	}
	return true
}

const upstreamName = "Open Food Facts"

// classifyFailure distinguishes timed-out calls from other transport
// failures. Either way the caller degrades to an empty result; the
// distinction exists only for the logs.
func classifyFailure(err error) *apperrors.AppError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.NewTimeoutError("upstream request")
	}
	return apperrors.NewExternalAPIError(err, upstreamName)
}

func (c *Client) warn(msg string, appErr *apperrors.AppError) {
	fields := append([]any{"url", c.baseURL}, appErr.LogFields()...)
	logger.Warn(msg, fields...)
}
