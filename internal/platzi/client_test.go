package platzi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/metrics"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234/api/v1?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Path != "/api/v1" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL returned nil error for missing host")
	}
}

func TestClient_FetchProducts(t *testing.T) {
	t.Parallel()

	var gotPath, gotUserAgent, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"title":"Shirt","price":10,"description":"cotton","category":{"id":1,"name":"Clothes","slug":"clothes"},"images":["https://img/1.png"]},
			{"id":2,"title":"Shoe","price":5,"images":[]}
		]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api/v1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	products, err := c.FetchProducts(ctx)
	if err != nil {
		t.Fatalf("FetchProducts returned error: %v", err)
	}
	want := []catalog.Product{
		{ID: 1, Title: "Shirt", Price: 10, Description: "cotton", Category: &catalog.Category{ID: 1, Name: "Clothes"}, Images: []string{"https://img/1.png"}},
		{ID: 2, Title: "Shoe", Price: 5, Images: []string{}},
	}
	if diff := cmp.Diff(want, products); diff != "" {
		t.Fatalf("FetchProducts mismatch (-want +got):\n%s", diff)
	}
	if gotPath != "/api/v1/products" {
		t.Fatalf("path = %q, want /api/v1/products", gotPath)
	}
	if !strings.HasPrefix(gotUserAgent, "shelf/") {
		t.Fatalf("User-Agent = %q, want shelf/*", gotUserAgent)
	}
	if gotRequestID == "" {
		t.Fatalf("X-Request-ID header missing")
	}
}

func TestClient_UpdateProductSendsPatch(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath, gotContentType string
	var gotBody catalog.Patch
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(catalog.Product{ID: 7, Title: gotBody.Title, Price: gotBody.Price})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	patch := catalog.Patch{Title: "New", Price: 12.5, Description: "d"}
	got, err := c.UpdateProduct(context.Background(), 7, patch)
	if err != nil {
		t.Fatalf("UpdateProduct returned error: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/products/7" {
		t.Fatalf("request = %s %s, want PUT /products/7", gotMethod, gotPath)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody != patch {
		t.Fatalf("body = %#v, want %#v", gotBody, patch)
	}
	if got == nil || got.ID != 7 || got.Title != "New" {
		t.Fatalf("UpdateProduct = %#v, want id=7 title=New", got)
	}
}

func TestClient_UpdateProductEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	got, err := c.UpdateProduct(context.Background(), 1, catalog.Patch{Title: "x"})
	if err != nil {
		t.Fatalf("UpdateProduct returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("UpdateProduct = %#v, want nil for empty body", got)
	}
}

func TestClient_CreateProductAccepts201(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":301,"title":"Hat","price":3,"category":{"id":1,"name":"Clothes"},"images":["u"]}`))
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	got, err := c.CreateProduct(context.Background(), catalog.Draft{Title: "Hat", Price: 3, CategoryID: 1, Images: []string{"u"}})
	if err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}
	if gotPath != "/products/" {
		t.Fatalf("path = %q, want /products/", gotPath)
	}
	if gotBody["categoryId"] != float64(1) {
		t.Fatalf("body categoryId = %v, want 1", gotBody["categoryId"])
	}
	if got == nil || got.ID != 301 {
		t.Fatalf("CreateProduct = %#v, want id=301", got)
	}
}

func TestClient_ErrorKinds(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte("{not-json"))
		case http.MethodPut:
			http.Error(w, `{"message":"nope"}`, http.StatusBadRequest)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	m := metrics.New()
	c, _ := NewClient(server.URL, WithMetrics(m))

	_, err := c.FetchProducts(context.Background())
	var nerr *NetworkError
	if !errors.As(err, &nerr) || nerr.IsStatus() || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchProducts error = %v, want decode NetworkError without status", err)
	}

	_, err = c.UpdateProduct(context.Background(), 1, catalog.Patch{})
	if !errors.As(err, &nerr) || !nerr.IsStatus() || nerr.StatusCode != http.StatusBadRequest {
		t.Fatalf("UpdateProduct error = %v, want status 400 NetworkError", err)
	}

	_, err = c.CreateProduct(context.Background(), catalog.Draft{})
	if StatusCode(err) != http.StatusInternalServerError || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("CreateProduct error = %v, want status 500", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, _ := NewClient(url, WithTimeout(time.Second))
	_, err := c.FetchProducts(context.Background())
	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("FetchProducts error = %T %v, want *NetworkError", err, err)
	}
	if nerr.IsStatus() || nerr.Op != OpList {
		t.Fatalf("NetworkError = %#v, want transport failure for list", nerr)
	}
}

func TestClient_TimeoutIsBounded(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	c, _ := NewClient(server.URL, WithTimeout(50*time.Millisecond))
	start := time.Now()
	_, err := c.FetchProducts(context.Background())
	if err == nil {
		t.Fatalf("FetchProducts returned nil error, want timeout")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("FetchProducts took %v, want bounded by timeout", elapsed)
	}
	if StatusCode(err) != 0 {
		t.Fatalf("StatusCode = %d, want 0 for timeout", StatusCode(err))
	}
}
