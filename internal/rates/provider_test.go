package rates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/core"
)

func TestProviderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"USD":1,"ILS":3.4,"GBP":1.8,"EURO":0.7}`))
	}))
	defer srv.Close()

	p := NewProvider(StaticURL(srv.URL), 5*time.Second, 0)
	rates, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rates[core.ILS] != 3.4 {
		t.Fatalf("expected ILS rate 3.4, got %v", rates[core.ILS])
	}
	if len(rates) != 4 {
		t.Fatalf("expected 4 currencies, got %d", len(rates))
	}
}

func TestProviderFetchNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProvider(StaticURL(srv.URL), 5*time.Second, 0)
	if _, err := p.Fetch(context.Background()); !errors.Is(err, core.ErrRateFetch) {
		t.Fatalf("expected ErrRateFetch, got %v", err)
	}
}

func TestProviderFetchBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	p := NewProvider(StaticURL(srv.URL), 5*time.Second, 0)
	if _, err := p.Fetch(context.Background()); !errors.Is(err, core.ErrRateFetch) {
		t.Fatalf("expected ErrRateFetch, got %v", err)
	}
}

func TestProviderFetchUnreachable(t *testing.T) {
	p := NewProvider(StaticURL("http://127.0.0.1:1/rates.json"), time.Second, 0)
	if _, err := p.Fetch(context.Background()); !errors.Is(err, core.ErrRateFetch) {
		t.Fatalf("expected ErrRateFetch, got %v", err)
	}
}

func TestProviderNoCacheByDefault(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"USD":1,"ILS":3.4}`))
	}))
	defer srv.Close()

	p := NewProvider(StaticURL(srv.URL), 5*time.Second, 0)
	for i := 0; i < 3; i++ {
		if _, err := p.Fetch(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if got := hits.Load(); got != 3 {
		t.Fatalf("expected 3 endpoint hits without caching, got %d", got)
	}
}

func TestProviderTTLCache(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"USD":1,"ILS":3.4}`))
	}))
	defer srv.Close()

	p := NewProvider(StaticURL(srv.URL), 5*time.Second, time.Minute)
	for i := 0; i < 3; i++ {
		if _, err := p.Fetch(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected 1 endpoint hit with TTL cache, got %d", got)
	}
}
