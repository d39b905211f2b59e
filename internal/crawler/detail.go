package crawler

import (
	"context"
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/riftdata/champstats-crawler/internal/stats"
)

const (
	statPanelXPath   = `//div[@id="content"]//div[contains(@class,"parser-output")]//div[contains(@class,"lvlselect") and ./aside]`
	levelSelectXPath = statPanelXPath + `//select[starts-with(@id,"lvl_")]`
	observationXPath = `//div[@data-source]`

	// The level selector's option value for max level. Any other value makes
	// the panel render mid-growth numbers, which would corrupt the dataset
	// without failing anything.
	maxLevelOption = "-1"
)

// DetailCrawler visits one champion's stat page, switches the stat panel to
// max level and hands the harvested fields to the extraction engine. A
// buffered-channel gate bounds how many crawls touch the network at once;
// the slot is held for the whole call.
type DetailCrawler struct {
	session Session
	retry   RetryPolicy
	engine  *stats.Engine
	gate    chan struct{}
	logger  *zap.Logger
}

// NewDetailCrawler builds a detail crawler with a gate of maxConcurrent slots.
func NewDetailCrawler(session Session, retry RetryPolicy, engine *stats.Engine, maxConcurrent int, logger *zap.Logger) *DetailCrawler {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DetailCrawler{
		session: session,
		retry:   retry,
		engine:  engine,
		gate:    make(chan struct{}, maxConcurrent),
		logger:  logger,
	}
}

// Crawl fetches and extracts the stats for one roster entry. The returned
// record's name always equals the entry's name.
func (c *DetailCrawler) Crawl(ctx context.Context, entry ChampionEntry) (*stats.ChampionStats, error) {
	if err := c.acquire(ctx); err != nil {
		return nil, err
	}
	defer c.release()

	page, err := c.session.NewPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("open stat page for %s: %w", entry.Name, err)
	}
	defer page.Close()

	// Selecting max level re-renders the panel; until then base and growth
	// values are not consistently present. The selection can fail on a page
	// that half-loaded, so it sits inside the retry envelope with the
	// navigation and both are redone together.
	if err := c.retry.Do(ctx, "navigate "+entry.StatsURL, func(ctx context.Context) error {
		if err := page.Navigate(ctx, entry.StatsURL); err != nil {
			return err
		}
		return page.SelectOption(ctx, levelSelectXPath, maxLevelOption)
	}); err != nil {
		return nil, err
	}

	markup, err := page.OuterHTML(ctx, statPanelXPath)
	if err != nil {
		return nil, fmt.Errorf("snapshot stat panel for %s: %w", entry.Name, err)
	}

	observations, err := harvestObservations(markup)
	if err != nil {
		return nil, fmt.Errorf("harvest stat panel for %s: %w", entry.Name, err)
	}
	for _, obs := range observations {
		c.logger.Debug("stat field observed",
			zap.String("champion", entry.Name),
			zap.String("field", obs.Field),
			zap.String("text", obs.Text),
		)
	}

	record := c.engine.Extract(entry.Name, observations)
	totalChampionsCrawled.Inc()
	return record, nil
}

func (c *DetailCrawler) acquire(ctx context.Context) error {
	select {
	case c.gate <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("detail crawl slot wait canceled: %w", ctx.Err())
	}
}

func (c *DetailCrawler) release() {
	<-c.gate
}

// harvestObservations yields one observation per data-source element of the
// serialized stat panel, in document order.
func harvestObservations(markup string) ([]stats.Observation, error) {
	doc, err := htmlquery.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse stat panel: %w", err)
	}

	var observations []stats.Observation
	for _, node := range htmlquery.Find(doc, observationXPath) {
		field, _ := attrValue(node, "data-source")
		observations = append(observations, stats.Observation{
			Field: field,
			Text:  flattenText(node),
		})
	}
	return observations, nil
}

// flattenText joins the stripped text nodes under n with single spaces,
// mirroring how the patterns expect the panel text to read.
func flattenText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			if s := strings.TrimSpace(node.Data); s != "" {
				parts = append(parts, s)
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}
