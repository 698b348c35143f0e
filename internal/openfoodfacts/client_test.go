package openfoodfacts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foodhealth/food-health-tracker/internal/apperrors"
)

func TestEnhanceQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"exact term", "atta", "wheat flour atta"},
		{"term inside phrase", "toor dal 1kg", "lentils dal"},
		{"case-insensitive", "CHAI", "tea chai"},
		{"first table entry wins on overlap", "dal masala", "lentils dal"},
		{"no match unchanged", "dark chocolate", "dark chocolate"},
		{"empty unchanged", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EnhanceQuery(tc.query); got != tc.want {
				t.Errorf("EnhanceQuery(%q) = %q; want %q", tc.query, got, tc.want)
			}
		})
	}
}

func newTestClient(baseURL, country string) *Client {
	return NewClient(Config{
		BaseURL:           baseURL,
		Country:           country,
		RequestsPerSecond: 1000, // no throttling in tests
	})
}

func TestSearch(t *testing.T) {
	var gotQuery map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q; want /search", r.URL.Path)
		}
		gotQuery = map[string]string{
			"search_terms": r.URL.Query().Get("search_terms"),
			"page_size":    r.URL.Query().Get("page_size"),
			"countries":    r.URL.Query().Get("countries"),
			"fields":       r.URL.Query().Get("fields"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[
			{"code":"111","product_name":"Toor Dal","brands":"Tata"},
			{"code":"222","product_name":"","nova_group":"4"}
		]}`))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL, "India")
	products := client.Search(context.Background(), "dal", 10)

	if gotQuery["search_terms"] != "lentils dal" {
		t.Errorf("search_terms = %q; want enhanced query", gotQuery["search_terms"])
	}
	if gotQuery["page_size"] != "10" {
		t.Errorf("page_size = %q; want 10", gotQuery["page_size"])
	}
	if gotQuery["countries"] != "India" {
		t.Errorf("countries = %q; want India", gotQuery["countries"])
	}
	if gotQuery["fields"] != productFields {
		t.Errorf("fields = %q; want the field projection", gotQuery["fields"])
	}

	if len(products) != 2 {
		t.Fatalf("got %d products; want 2", len(products))
	}
	if products[0].ID != "111" || products[0].ProductName != "Toor Dal" {
		t.Errorf("first product = %+v", products[0])
	}
	if products[1].NovaGroup == nil || *products[1].NovaGroup != 4 {
		t.Errorf("second product nova = %v; want 4", products[1].NovaGroup)
	}
}

func TestSearchFailuresYieldEmptyResult(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(tc.handler)
			defer ts.Close()

			client := newTestClient(ts.URL, "")
			if products := client.Search(context.Background(), "rice", 5); len(products) != 0 {
				t.Errorf("got %d products; want none", len(products))
			}
		})
	}
}

func TestSearchUnreachableEndpoint(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1", "")
	if products := client.Search(context.Background(), "rice", 5); len(products) != 0 {
		t.Errorf("got %d products; want none", len(products))
	}
}

func TestGetByBarcode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/product/123":
			w.Write([]byte(`{"status":1,"product":{"code":"123","product_name":"Ghee","nutriscore_grade":"d"}}`))
		default:
			w.Write([]byte(`{"status":0,"status_verbose":"product not found"}`))
		}
	}))
	defer ts.Close()

	client := newTestClient(ts.URL, "")

	product, ok := client.GetByBarcode(context.Background(), "123")
	if !ok {
		t.Fatal("expected product for barcode 123")
	}
	if product.ID != "123" || product.ProductName != "Ghee" {
		t.Errorf("product = %+v", product)
	}

	if _, ok := client.GetByBarcode(context.Background(), "999"); ok {
		t.Error("expected absent result for unknown barcode")
	}
}

// netTimeoutErr mimics a transport-level timeout.
type netTimeoutErr struct{}

func (netTimeoutErr) Error() string   { return "i/o timeout" }
func (netTimeoutErr) Timeout() bool   { return true }
func (netTimeoutErr) Temporary() bool { return true }

func TestClassifyFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.ErrorType
	}{
		{"deadline exceeded", context.DeadlineExceeded, apperrors.ErrorTypeTimeout},
		{"wrapped deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), apperrors.ErrorTypeTimeout},
		{"net timeout", netTimeoutErr{}, apperrors.ErrorTypeTimeout},
		{"connection refused", errors.New("connection refused"), apperrors.ErrorTypeExternal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if appErr := classifyFailure(tc.err); appErr.Type != tc.want {
				t.Errorf("classifyFailure(%v).Type = %q; want %q", tc.err, appErr.Type, tc.want)
			}
		})
	}
}

func TestGetByBarcodeUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL, "")
	if _, ok := client.GetByBarcode(context.Background(), "123"); ok {
		t.Error("upstream failure must read as absent, not as an error")
	}
}
