// Package crawler implements the two-stage wiki crawl: one listing pass that
// enumerates the champion roster, then a gated fan-out over every champion's
// stat page.
package crawler

import (
	"context"
	"time"

	"github.com/riftdata/champstats-crawler/internal/stats"
)

// ChampionEntry is one roster row: the champion's canonical name, the patch
// it last changed in, and the absolute URL of its stat page. Entries are
// immutable once the listing pass produced them.
type ChampionEntry struct {
	Name             string `json:"name"`
	LastChangedPatch string `json:"last_changed_patch"`
	StatsURL         string `json:"stats_url"`
}

// ResultPair couples a roster entry with the stats extracted from its page.
// The final dataset is a slice of these, in roster order.
type ResultPair struct {
	Listing ChampionEntry        `json:"listing_result"`
	Details *stats.ChampionStats `json:"details"`
}

// Page is one isolated browsing surface (a tab). Concurrent crawls must not
// share a Page: the harvest assumes the DOM reflects only its own navigation.
type Page interface {
	// Navigate loads the URL and waits for the document to be ready. The
	// context's deadline bounds the attempt.
	Navigate(ctx context.Context, url string) error
	// OuterHTML returns the serialized markup of the first element matching
	// the XPath expression.
	OuterHTML(ctx context.Context, xpath string) (string, error)
	// SelectOption sets the value of the first <select> matching the XPath
	// expression and fires its change event.
	SelectOption(ctx context.Context, xpath, value string) error
	// Close releases the tab.
	Close()
}

// Session creates pages against a shared browser.
type Session interface {
	NewPage(ctx context.Context) (Page, error)
}

// Reference navigation policy: the budget every page load in the pipeline
// gets before the run is declared failed.
const (
	DefaultNavAttempts = 3
	DefaultNavTimeout  = 10 * time.Second
)
