package crawler

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	listingPath       = "/wiki/List_of_champions"
	listingTableXPath = `//div[@id="content"]//table[contains(@class,"article-table")]`
)

// ListingCrawler reads the roster page once and produces one ChampionEntry
// per table row, in document order. Unlike the stat extraction, roster
// parsing has no leniency: a malformed row means the page schema changed and
// the run must fail loudly rather than return a silently incomplete roster.
type ListingCrawler struct {
	session Session
	retry   RetryPolicy
	baseURL string
	logger  *zap.Logger
}

// NewListingCrawler builds a listing crawler rooted at the wiki base URL.
func NewListingCrawler(session Session, retry RetryPolicy, baseURL string, logger *zap.Logger) *ListingCrawler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListingCrawler{
		session: session,
		retry:   retry,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Crawl navigates to the roster page and parses its champion table.
func (c *ListingCrawler) Crawl(ctx context.Context) ([]ChampionEntry, error) {
	page, err := c.session.NewPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("open listing page: %w", err)
	}
	defer page.Close()

	target := c.baseURL + listingPath
	if err := c.retry.Do(ctx, "navigate "+target, func(ctx context.Context) error {
		return page.Navigate(ctx, target)
	}); err != nil {
		return nil, err
	}

	markup, err := page.OuterHTML(ctx, listingTableXPath)
	if err != nil {
		return nil, fmt.Errorf("snapshot roster table: %w", err)
	}

	entries, err := parseListingTable(markup, c.baseURL)
	if err != nil {
		return nil, err
	}
	c.logger.Info("roster discovered", zap.Int("champions", len(entries)))
	return entries, nil
}

// parseListingTable extracts roster entries from the serialized champion
// table. The champion name comes from the first cell's sort key, not its
// visible text, which carries icon decoration.
func parseListingTable(markup, baseURL string) ([]ChampionEntry, error) {
	doc, err := htmlquery.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse roster table: %w", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	var entries []ChampionEntry
	for i, row := range htmlquery.Find(doc, "//tbody/tr") {
		nameCell := htmlquery.FindOne(row, "./td[1]")
		if nameCell == nil {
			return nil, fmt.Errorf("roster row %d: missing name cell", i+1)
		}
		name, ok := attrValue(nameCell, "data-sort-value")
		if !ok || name == "" {
			return nil, fmt.Errorf("roster row %d: name cell has no data-sort-value", i+1)
		}
		patchCell := htmlquery.FindOne(row, "./td[4]")
		if patchCell == nil {
			return nil, fmt.Errorf("roster row %d (%s): missing patch cell", i+1, name)
		}
		anchor := htmlquery.FindOne(nameCell, ".//a")
		if anchor == nil {
			return nil, fmt.Errorf("roster row %d (%s): missing stat page link", i+1, name)
		}
		href, ok := attrValue(anchor, "href")
		if !ok || href == "" {
			return nil, fmt.Errorf("roster row %d (%s): stat page link has no href", i+1, name)
		}
		ref, err := url.Parse(href)
		if err != nil {
			return nil, fmt.Errorf("roster row %d (%s): bad href %q: %w", i+1, name, href, err)
		}

		entries = append(entries, ChampionEntry{
			Name:             name,
			LastChangedPatch: strings.TrimSpace(htmlquery.InnerText(patchCell)),
			StatsURL:         base.ResolveReference(ref).String(),
		})
	}
	return entries, nil
}

// attrValue reads an attribute, distinguishing missing from empty.
func attrValue(n *html.Node, name string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}
