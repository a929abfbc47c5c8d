package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samovar-labs/habr-harvester/internal/config"
	"github.com/samovar-labs/habr-harvester/internal/crawler"
	"github.com/samovar-labs/habr-harvester/internal/domain"
	"github.com/samovar-labs/habr-harvester/internal/logger"
	"github.com/samovar-labs/habr-harvester/internal/storage"
)

// Collector is the targeted-run runtime: it harvests an explicit list
// of article URLs, optionally with their comment threads, skipping
// page discovery entirely.
type Collector struct {
	cfg          *config.Config
	crawlService *crawler.Service
	log          logger.Logger
	store        storage.Store
}

// NewCollector builds a collector runtime from config files.
func NewCollector(ctx context.Context, cfg *config.Config, log logger.Logger) (*Collector, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := buildClient(cfg, log)
	if err != nil {
		return nil, err
	}

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	crawlService := crawler.NewService(client, newRecordSink(ctx, store, fanout, log), crawler.Options{
		Origin:      cfg.BlogOrigin,
		Concurrency: cfg.FetchConcurrency,
		Log:         log,
	})

	return &Collector{
		cfg:          cfg,
		crawlService: crawlService,
		log:          log,
		store:        store,
	}, nil
}

// Run harvests the given article URLs once and returns the run summary.
// Repeating URLs across runs appends duplicate records.
func (c *Collector) Run(ctx context.Context, articleURLs []string, withComments bool) (domain.RunSummary, error) {
	if c == nil || c.crawlService == nil {
		return domain.RunSummary{}, fmt.Errorf("collector is not initialized")
	}
	defer c.closeStore()

	if len(articleURLs) == 0 {
		return domain.RunSummary{}, fmt.Errorf("no article urls given")
	}

	start := time.Now()
	c.log.InfoObj("targeted crawl started", "crawl_meta", map[string]any{
		"articles_count": len(articleURLs),
		"with_comments":  withComments,
		"started_at":     start.UTC(),
	})

	summary, err := c.crawlService.CrawlArticles(ctx, articleURLs, withComments)
	if err != nil {
		return summary, err
	}

	c.log.InfoObj("targeted crawl completed", "crawl_meta", map[string]any{
		"articles_count": len(articleURLs),
		"total_records":  summary.TotalRecords(),
		"elapsed_ms":     time.Since(start).Milliseconds(),
	})
	return summary, nil
}

func (c *Collector) closeStore() {
	if c == nil || c.store == nil {
		return
	}
	if err := c.store.Close(); err != nil {
		c.log.ErrorObj("storage close failed", "error", err)
	}
}
