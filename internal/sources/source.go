// Package sources contains the external verification source clients.
// Each client implements the Source interface; the aggregator depends only
// on the interface, so adding a source never touches reconciliation logic.
package sources

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/ppiankov/verity/internal/model"
)

// Source is one external verification service
type Source interface {
	// Name returns the human-readable source name
	Name() string

	// Configured reports whether credentials are present. Unconfigured
	// sources are silently skipped by the aggregator.
	Configured() bool

	// Query asks the source for its opinion on a claim. A nil response
	// with a nil error means the source has no fact-checks for it.
	Query(ctx context.Context, claim string) (*model.SourceResponse, error)
}

// All builds every known source client from configuration, configured or not.
// The aggregator filters on Configured().
func All(cfg model.SourcesConfig) []Source {
	return []Source{
		NewGoogleFactCheck(cfg),
		NewClaimBuster(cfg),
		NewFactiverse(cfg),
	}
}

// newHTTPClient builds the shared client shape used by all sources:
// bounded timeout, capped redirects, optional proxy override.
func newHTTPClient(cfg model.SourcesConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: newProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

// newLimiter builds the per-source rate limiter. Every client gets its own:
// the limits protect individual APIs, not the process.
func newLimiter(cfg model.SourcesConfig) *rate.Limiter {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2.0
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = 5
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// newProxyFunc creates a proxy function from configuration, falling back to
// the standard environment variables when none is set.
func newProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
