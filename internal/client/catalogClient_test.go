package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"outfit-agent-demo/internal/apperr"
	"outfit-agent-demo/internal/config"
	"outfit-agent-demo/internal/dto"
)

func TestCatalogSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "denim jacket" {
			t.Errorf("q = %q", q)
		}
		if limit := r.URL.Query().Get("limit"); limit != "5" {
			t.Errorf("limit = %q", limit)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"products": []dto.ProductSummary{
				{ID: "p1", Name: "Denim Jacket", Price: 4999, Currency: "USD", Source: "shop"},
				{ID: "p2", Name: "Denim Jacket II", Price: 5999, Currency: "USD", Source: "shop"},
			},
		})
	}))
	t.Cleanup(srv.Close)

	c, err := NewCatalogClient(&config.Catalog{BaseApiURL: srv.URL})
	if err != nil {
		t.Fatalf("NewCatalogClient: %v", err)
	}

	products, err := c.Search(context.Background(), "denim jacket", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(products) != 2 || products[0].ID != "p1" || products[1].ID != "p2" {
		t.Fatalf("products = %+v", products)
	}
}

func TestCatalogSearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c, err := NewCatalogClient(&config.Catalog{BaseApiURL: srv.URL})
	if err != nil {
		t.Fatalf("NewCatalogClient: %v", err)
	}

	if _, err := c.Search(context.Background(), "x", 1); !errors.Is(err, apperr.ErrExternalCall) {
		t.Fatalf("err = %v, want external call failure", err)
	}
}
