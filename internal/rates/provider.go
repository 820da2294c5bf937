package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"fintrack/internal/core"
)

// FallbackURL is the last resort of the endpoint resolution chain:
// persisted user setting, then environment default, then this.
const FallbackURL = "https://open.er-api.fintrack.dev/rates.json"

const cacheKey = "rates"

// URLResolver returns the exchange rate endpoint to use for a fetch.
// Resolution runs per call so a changed setting takes effect immediately.
type URLResolver func(ctx context.Context) string

// Provider fetches the currency -> USD-relative rate map over HTTP.
//
// Rates are fetched per operation by default. A positive TTL enables a
// short-lived cache; zero keeps the always-fresh semantics where a
// rate-source change takes effect on the very next call.
type Provider struct {
	client     *http.Client
	resolveURL URLResolver
	cache      *gocache.Cache
	ttl        time.Duration
}

func NewProvider(resolveURL URLResolver, timeout, ttl time.Duration) *Provider {
	p := &Provider{
		client:     &http.Client{Timeout: timeout},
		resolveURL: resolveURL,
		ttl:        ttl,
	}
	if ttl > 0 {
		p.cache = gocache.New(ttl, 2*ttl)
	}
	return p
}

// StaticURL is a URLResolver for a fixed endpoint.
func StaticURL(url string) URLResolver {
	return func(context.Context) string { return url }
}

// Fetch retrieves the current rate map. Unreachable endpoints, non-200
// responses and non-JSON bodies all surface as core.ErrRateFetch.
func (p *Provider) Fetch(ctx context.Context) (core.Rates, error) {
	url := p.resolveURL(ctx)
	if url == "" {
		url = FallbackURL
	}

	if p.cache != nil {
		if cached, ok := p.cache.Get(cacheKey + "|" + url); ok {
			slog.DebugContext(ctx, "Exchange rates cache hit", "url", url)
			return cached.(core.Rates), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", core.ErrRateFetch, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRateFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: endpoint returned status %d", core.ErrRateFetch, resp.StatusCode)
	}

	var rates core.Rates
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", core.ErrRateFetch, err)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: empty rate map", core.ErrRateFetch)
	}

	if p.cache != nil {
		p.cache.Set(cacheKey+"|"+url, rates, p.ttl)
	}

	slog.DebugContext(ctx, "Exchange rates fetched", "url", url, "currencies", len(rates))
	return rates, nil
}
