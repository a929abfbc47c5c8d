package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samovar-labs/habr-harvester/internal/config"
	"github.com/samovar-labs/habr-harvester/internal/crawler"
	"github.com/samovar-labs/habr-harvester/internal/logger"
	"github.com/samovar-labs/habr-harvester/internal/storage"
	"github.com/samovar-labs/habr-harvester/pkg/httpclient"
	"github.com/samovar-labs/habr-harvester/pkg/sinks"
)

// Harvester represents the blog harvester runtime. It owns the crawl
// loop over the configured blog index, coordinating the retrying HTTP
// client, the crawl service, local storage and the downstream sink
// fanout. It also handles storage initialization and cleanup.
type Harvester struct {
	cfg           *config.Config
	fanout        *sinks.Fanout
	crawlService  *crawler.Service
	crawlInterval time.Duration
	log           logger.Logger
	store         storage.Store
}

// NewHarvester builds a harvester runtime from config files.
func NewHarvester(ctx context.Context, cfg *config.Config, log logger.Logger) (*Harvester, error) {
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
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type": cfg.StorageType,
		"path": cfg.BBoltPath,
	})

	crawlService := crawler.NewService(client, newRecordSink(ctx, store, fanout, log), crawler.Options{
		Origin:      cfg.BlogOrigin,
		Concurrency: cfg.FetchConcurrency,
		Log:         log,
	})

	return &Harvester{
		cfg:           cfg,
		fanout:        fanout,
		crawlService:  crawlService,
		crawlInterval: cfg.CrawlInterval,
		log:           log,
		store:         store,
	}, nil
}

// Run executes the blog crawl. With crawl_interval set it keeps
// re-crawling on a ticker until the context is cancelled; with the
// default of zero it runs once and returns.
func (h *Harvester) Run(ctx context.Context) error {
	if h == nil || h.crawlService == nil {
		return fmt.Errorf("harvester is not initialized")
	}
	defer h.closeStore()

	h.log.InfoObj("harvester starting", "harvester_state", map[string]any{
		"blog_url":       h.cfg.BlogURL,
		"sinks_count":    h.fanout.Size(),
		"concurrency":    h.cfg.FetchConcurrency,
		"crawl_interval": h.crawlInterval.String(),
	})

	if err := h.runOnce(ctx); err != nil {
		return err
	}
	if h.crawlInterval <= 0 {
		return nil
	}

	ticker := time.NewTicker(h.crawlInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.InfoObj("harvester loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := h.runOnce(ctx); err != nil {
				h.log.ErrorObj("scheduled crawl failed", "error", err)
			}
		}
	}
}

// runOnce performs a single full crawl of the configured blog.
func (h *Harvester) runOnce(ctx context.Context) error {
	start := time.Now()
	h.log.InfoObj("crawl started", "crawl_meta", map[string]any{
		"blog_url":   h.cfg.BlogURL,
		"started_at": start.UTC(),
	})
	summary, err := h.crawlService.RunBlog(ctx, h.cfg.BlogURL)
	if err != nil {
		return err
	}
	h.log.InfoObj("crawl completed", "crawl_meta", map[string]any{
		"blog_url":      h.cfg.BlogURL,
		"last_page":     summary.LastPage,
		"total_records": summary.TotalRecords(),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return nil
}

// closeStore safely closes the storage backend, logging any errors encountered.
func (h *Harvester) closeStore() {
	if h == nil || h.store == nil {
		return
	}
	if err := h.store.Close(); err != nil {
		h.log.ErrorObj("storage close failed", "error", err)
	}
}

// buildClient assembles the retrying HTTP client from config: timeout,
// backoff policy, optional proxy pool, and the User-Agent rotation.
func buildClient(cfg *config.Config, log logger.Logger) (*httpclient.RestyClient, error) {
	proxies, err := httpclient.LoadProxies(cfg.ProxiesFile)
	if err != nil {
		return nil, fmt.Errorf("load proxies: %w", err)
	}
	if len(proxies) > 0 {
		log.InfoObj("proxy pool loaded", "proxies_meta", map[string]any{
			"file":  cfg.ProxiesFile,
			"count": len(proxies),
		})
	}

	client, err := httpclient.NewRestyClient(httpclient.Options{
		Timeout: cfg.FetchTimeout,
		Retry: httpclient.RetryPolicy{
			Attempts: cfg.RetryAttempts,
			WaitMin:  cfg.RetryWait,
			WaitMax:  cfg.RetryMaxWait,
			Statuses: cfg.RetryStatuses,
		},
		Proxies: proxies,
	})
	if err != nil {
		return nil, fmt.Errorf("init http client: %w", err)
	}
	return client, nil
}

// buildFanout loads the optional sinks registry. With no sinks file
// configured, records stay local and the fanout is empty.
func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*sinks.Fanout, error) {
	if cfg.SinksFile == "" {
		return sinks.NewFanout(nil), nil
	}

	sinkReg, err := sinks.LoadRegistry(cfg.SinksFile)
	if err != nil {
		return nil, fmt.Errorf("load sinks registry: %w", err)
	}

	enabled := sinkReg.Enabled()
	clients, err := sinks.BuildAll(ctx, sinks.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}

	sinkSummaries := make([]map[string]string, 0, len(enabled))
	for _, sinkCfg := range enabled {
		sinkSummaries = append(sinkSummaries, map[string]string{
			"id":   sinkCfg.ID,
			"type": sinkCfg.Type,
		})
	}
	log.InfoObj("sinks registry loaded", "sinks_meta", map[string]any{
		"count": len(sinkSummaries),
		"sinks": sinkSummaries,
	})

	return sinks.NewFanout(clients), nil
}
