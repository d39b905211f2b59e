package crawler

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/riftdata/champstats-crawler/internal/stats"
)

// Pipeline runs the full crawl: one listing pass, then a concurrent detail
// pass over every discovered champion. The whole run shares one browser
// session; every crawl gets its own tab.
type Pipeline struct {
	listing *ListingCrawler
	detail  *DetailCrawler

	// maxChampions truncates the roster when > 0. A debugging knob, not a
	// sampling feature.
	maxChampions int

	logger *zap.Logger
}

// NewPipeline wires the two crawl stages together.
func NewPipeline(listing *ListingCrawler, detail *DetailCrawler, maxChampions int, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		listing:      listing,
		detail:       detail,
		maxChampions: maxChampions,
		logger:       logger,
	}
}

// Run produces one ResultPair per champion, in roster order regardless of
// crawl completion order. The first detail crawl to fail its retry budget
// cancels the rest and fails the run; there is no partial dataset.
func (p *Pipeline) Run(ctx context.Context) ([]ResultPair, error) {
	entries, err := p.listing.Crawl(ctx)
	if err != nil {
		return nil, err
	}
	if p.maxChampions > 0 && len(entries) > p.maxChampions {
		p.logger.Info("truncating roster",
			zap.Int("discovered", len(entries)),
			zap.Int("limit", p.maxChampions),
		)
		entries = entries[:p.maxChampions]
	}

	records := make([]*stats.ChampionStats, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			record, err := p.detail.Crawl(gctx, entry)
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pairs := make([]ResultPair, len(entries))
	for i, entry := range entries {
		pairs[i] = ResultPair{Listing: entry, Details: records[i]}
	}
	p.logger.Info("crawl finished", zap.Int("champions", len(pairs)))
	return pairs, nil
}
