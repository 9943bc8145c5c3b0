package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"animateme/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducts_StorefrontDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[
			{"id": 8123456789012, "title": "Tee", "handle": "tee", "variants": [{"price": "499.00"}], "images": [{"src": "https://cdn/tee.png"}]},
			{"id": 2, "title": "Mug", "handle": "mug", "variants": [], "images": []},
			{"id": 3, "title": "Cap", "handle": "cap"}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/products.json", time.Second, 2, nil)
	got, err := c.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.CatalogProduct{
		ID: "8123456789012", Title: "Tee", Price: 499, ImageURL: "https://cdn/tee.png", ProductURL: srv.URL + "/products/tee",
	}, got[0])
	assert.Equal(t, "Mug", got[1].Title)
	assert.Zero(t, got[1].Price)
}

func TestProducts_PlainArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(` [{"id":"a","title":"Sticker","price":49,"imageUrl":"i","productUrl":"u"}]`))
	}))
	defer srv.Close()

	got, err := New(srv.URL, time.Second, 0, nil).Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.CatalogProduct{{ID: "a", Title: "Sticker", Price: 49, ImageURL: "i", ProductURL: "u"}}, got)
}

func TestProducts_UpstreamFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
		"body":   func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`<html>`)) },
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			_, err := New(srv.URL, time.Second, 0, nil).Products(context.Background())
			assert.True(t, errors.Is(err, ErrUpstream), "got %v", err)
		})
	}
}

func TestProducts_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(srv.URL, 20*time.Millisecond, 0, nil).Products(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestProducts_NoEndpointConfigured(t *testing.T) {
	got, err := New("", time.Second, 0, nil).Products(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
