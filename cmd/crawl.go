package cmd

import (
	"bytes"
	"context"
	"fmt"

	gstorage "cloud.google.com/go/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/riftdata/champstats-crawler/internal/browser"
	"github.com/riftdata/champstats-crawler/internal/config"
	"github.com/riftdata/champstats-crawler/internal/crawler"
	"github.com/riftdata/champstats-crawler/internal/logging"
	"github.com/riftdata/champstats-crawler/internal/stats"
	"github.com/riftdata/champstats-crawler/internal/storage"
	"github.com/riftdata/champstats-crawler/internal/storage/gcs"
	"github.com/riftdata/champstats-crawler/internal/storage/local"
)

// newCrawlCmd creates the 'crawl' subcommand, which runs one full pipeline
// pass and persists its artifacts.
func newCrawlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crawl",
		Short: "Runs one crawl and uploads the dataset",
		RunE:  runCrawlCommand,
	}
}

func runCrawlCommand(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	recorder := browser.NewTraceRecorder()
	pairs, err := runPipeline(ctx, cfg, recorder, logger)

	// The trace archive is most valuable when the run failed, so it is
	// persisted before the crawl error is surfaced.
	if perr := persist(ctx, cfg, recorder, pairs, err == nil, logger); perr != nil {
		if err == nil {
			return perr
		}
		logger.Error("persisting artifacts failed", zap.Error(perr))
	}
	return err
}

func runPipeline(
	ctx context.Context,
	cfg config.Config,
	recorder *browser.TraceRecorder,
	logger *zap.Logger,
) ([]crawler.ResultPair, error) {
	session, err := browser.NewSession(browser.Config{
		UserAgent: cfg.Browser.UserAgent,
		Headless:  cfg.Browser.Headless,
	}, recorder, logger)
	if err != nil {
		return nil, fmt.Errorf("start browser: %w", err)
	}
	defer session.Close()

	retry := crawler.RetryPolicy{
		MaxAttempts:    cfg.Crawl.NavAttempts,
		AttemptTimeout: cfg.NavTimeout(),
		Logger:         logger,
	}
	engine := stats.NewEngine(logger)
	listing := crawler.NewListingCrawler(session, retry, cfg.Wiki.BaseURL, logger)
	detail := crawler.NewDetailCrawler(session, retry, engine, cfg.Crawl.MaxConcurrentDetails, logger)
	pipeline := crawler.NewPipeline(listing, detail, cfg.Crawl.MaxChampions, logger)

	return pipeline.Run(ctx)
}

// persist uploads the trace archive always and the dataset only for complete
// runs; a failed crawl must not leave a partial dataset behind.
func persist(
	ctx context.Context,
	cfg config.Config,
	recorder *browser.TraceRecorder,
	pairs []crawler.ResultPair,
	complete bool,
	logger *zap.Logger,
) error {
	store, err := newBlobStore(ctx, cfg)
	if err != nil {
		return err
	}

	var archive bytes.Buffer
	if err := recorder.WriteArchive(&archive); err != nil {
		return err
	}
	uri, err := store.PutObject(ctx, cfg.Storage.TracesObject, storage.ContentTypeZip, &archive)
	if err != nil {
		return err
	}
	logger.Info("trace archive persisted", zap.String("uri", uri))

	if !complete {
		return nil
	}
	uri, err = storage.PutJSON(ctx, store, cfg.Storage.OutputObject, pairs)
	if err != nil {
		return err
	}
	logger.Info("dataset persisted", zap.String("uri", uri), zap.Int("champions", len(pairs)))
	return nil
}

func newBlobStore(ctx context.Context, cfg config.Config) (storage.BlobStore, error) {
	if cfg.Storage.GCSBucket == "" {
		store, err := local.New(cfg.Storage.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("init local store: %w", err)
		}
		return store, nil
	}

	client, err := gstorage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("init gcs client: %w", err)
	}
	store, err := gcs.New(client, cfg.Storage.GCSBucket)
	if err != nil {
		return nil, fmt.Errorf("init gcs store: %w", err)
	}
	return store, nil
}
