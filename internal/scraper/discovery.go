package scraper

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

const (
	discoveryMaxAttempts = 15
	discoveryDelay       = 2 * time.Second
	// A real inventory grid renders hundreds of cells; anything at or under
	// this count is a placeholder or a single-row loading stub.
	minTableCells = 50
)

// Identity-provider frames show up during and after the SSO handshake.
// They sometimes contain small tables and are never the content.
var identityProviderFragments = []string{
	"okta.com",
	"login.microsoftonline.com",
	"auth0.com",
	"accounts.google.com",
	"onelogin.com",
}

// TableCandidate is one document (top-level page or iframe) that might host
// the inventory grid. Extract is deferred so enumeration stays cheap.
type TableCandidate struct {
	Origin    string
	CellCount int
	Extract   func() ([][]string, error)
}

// CandidateLister enumerates the current candidates in document order.
// It is a function type so the polling loop is testable without a browser.
type CandidateLister func(ctx context.Context) ([]TableCandidate, error)

// DiscoveryOptions bound the polling loop. Zero values take the defaults.
type DiscoveryOptions struct {
	MaxAttempts     int
	Delay           time.Duration
	MinCells        int
	ExcludedOrigins []string
}

func (o DiscoveryOptions) withDefaults() DiscoveryOptions {
	if o.MaxAttempts == 0 {
		o.MaxAttempts = discoveryMaxAttempts
	}
	if o.Delay == 0 {
		o.Delay = discoveryDelay
	}
	if o.MinCells == 0 {
		o.MinCells = minTableCells
	}
	if o.ExcludedOrigins == nil {
		o.ExcludedOrigins = identityProviderFragments
	}
	return o
}

// qualifies is the density predicate: a candidate hosts the inventory grid
// when it is not an identity-provider frame and its cell count exceeds the
// threshold.
func qualifies(c TableCandidate, opts DiscoveryOptions) bool {
	origin := strings.ToLower(c.Origin)
	for _, fragment := range opts.ExcludedOrigins {
		if fragment != "" && strings.Contains(origin, fragment) {
			return false
		}
	}
	return c.CellCount > opts.MinCells
}

// discoverTable polls the candidate lister until a document qualifies.
// First candidate above the threshold wins, in enumeration order; there is
// no best-match pass. Render timing is not signaled by any load event the
// automation layer can observe reliably, hence polling.
func discoverTable(ctx context.Context, list CandidateLister, opts DiscoveryOptions) (*TableCandidate, error) {
	opts = opts.withDefaults()

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}

		candidates, err := list(ctx)
		if err != nil {
			log.Printf("[SCRAPER] attempt %d/%d: candidate enumeration failed: %v", attempt, opts.MaxAttempts, err)
			continue
		}

		for _, c := range candidates {
			if qualifies(c, opts) {
				log.Printf("[SCRAPER] inventory table found on attempt %d (origin=%s, cells=%d)", attempt, c.Origin, c.CellCount)
				found := c
				return &found, nil
			}
		}
	}

	return nil, fmt.Errorf("inventory table not found after %d attempts", opts.MaxAttempts)
}
