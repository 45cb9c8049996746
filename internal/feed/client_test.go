package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func noopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testClient(baseURL string) *Client {
	return NewClient(Options{
		BaseURL:   baseURL,
		APIKey:    "test-key",
		Host:      "test-host",
		UserAgent: "test",
		Timeout:   time.Second,
	}, noopLogger())
}

func TestFetchHotProductsBlankCategory(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchHotProducts(context.Background(), "   ", 1)
	if !errors.Is(err, ErrCategoryRequired) {
		t.Fatalf("expected ErrCategoryRequired, got %v", err)
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Fatalf("blank category must not trigger a network call, saw %d", calls)
	}
}

func TestFetchHotProductsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchHotProducts(context.Background(), "44", 1)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transportErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500 recorded, got %d", transportErr.StatusCode)
	}
}

func TestFetchHotProductsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := testClient(srv.URL)
	_, err := c.FetchHotProducts(context.Background(), "44", 1)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError for refused connection, got %v", err)
	}
}

func TestFetchHotProductsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "You are not subscribed to this API."}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchHotProducts(context.Background(), "44", 1)

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstreamErr.Message == "" {
		t.Fatal("upstream message should be carried through")
	}
}

func TestFetchHotProductsMessageMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "rate limit exceeded"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchHotProducts(context.Background(), "44", 1)

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError for message marker, got %v", err)
	}
}

func TestFetchHotProductsDecodeError(t *testing.T) {
	bodies := []string{
		`this is not json`,
		`{"data": []}`, // object without an error marker where an array was expected
		`42`,
	}

	for _, body := range bodies {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		c := testClient(srv.URL)
		_, err := c.FetchHotProducts(context.Background(), "44", 1)
		srv.Close()

		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) {
			t.Fatalf("body %q: expected DecodeError, got %v", body, err)
		}
	}
}

func TestFetchHotProductsSuccess(t *testing.T) {
	var gotQuery map[string]string
	var gotKey, gotHost string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-rapidapi-key")
		gotHost = r.Header.Get("x-rapidapi-host")
		gotQuery = map[string]string{
			"cat_id": r.URL.Query().Get("cat_id"),
			"page":   r.URL.Query().Get("page"),
			"sort":   r.URL.Query().Get("sort"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"product_id": 32989738329, "product_title": "Wireless Bluetooth Headphones", "category_name": "Consumer Electronics", "app_sale_price": "12.99", "evaluate_rate": "95.0%", "lastest_volume": 5234},
			{"product_id": "32989738330", "product_title": "USB-C Fast Charging Cable", "lastest_volume": 8932}
		]`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	products, err := c.FetchHotProducts(context.Background(), "44", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotKey != "test-key" || gotHost != "test-host" {
		t.Fatalf("auth headers not attached: key=%q host=%q", gotKey, gotHost)
	}
	if gotQuery["cat_id"] != "44" || gotQuery["page"] != "2" || gotQuery["sort"] != defaultSort {
		t.Fatalf("unexpected query parameters: %#v", gotQuery)
	}

	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	first := products[0]
	if first.ID == nil || *first.ID != 32989738329 {
		t.Fatalf("expected numeric id decoded, got %#v", first.ID)
	}
	if first.Rating != "95.0%" {
		t.Fatalf("rating text should be preserved, got %q", first.Rating)
	}
	if first.Orders != 5234 {
		t.Fatalf("unexpected orders: %d", first.Orders)
	}
	second := products[1]
	if second.ID == nil || *second.ID != 32989738330 {
		t.Fatal("string-encoded id should decode to the same int64")
	}
}

func TestFetchHotProductsEmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	products, err := c.FetchHotProducts(context.Background(), "44", 1)
	if err != nil {
		t.Fatalf("empty feed page is not an error: %v", err)
	}
	if products == nil {
		t.Fatal("result must be non-nil on success")
	}
	if len(products) != 0 {
		t.Fatalf("expected empty slice, got %d entries", len(products))
	}
}

func TestFetchCategoriesPassThrough(t *testing.T) {
	payload := `[{"category_name": "Consumer Electronics", "category_id": 44}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != categoriesPath {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	raw, err := c.FetchCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != payload {
		t.Fatalf("categories payload must pass through unmodified, got %s", raw)
	}
}

func TestFetchCategoriesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "invalid key"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchCategories(context.Background())

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestFetchCategoriesOpaqueObject(t *testing.T) {
	// An object without an error marker is a legal opaque categories payload.
	payload := `{"categories": [{"id": 2}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	raw, err := c.FetchCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != payload {
		t.Fatalf("payload altered: %s", raw)
	}
}
