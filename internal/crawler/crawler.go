package crawler

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/samovar-labs/habr-harvester/internal/domain"
	"github.com/samovar-labs/habr-harvester/internal/logger"
	"github.com/samovar-labs/habr-harvester/pkg/httpclient"
)

const defaultConcurrency = 16

// Service drives the three-stage crawl pipeline: discover index pages,
// fetch articles, fetch comment threads. A run is one-shot; individual
// fetch failures are logged and isolated, never fatal.
type Service struct {
	client      httpclient.Client
	sink        RecordSink
	origin      string
	concurrency int
	log         logger.Logger
}

// Options tunes a crawl Service.
type Options struct {
	// Origin prefixes relative article hrefs, e.g. "https://habr.com".
	Origin string
	// Concurrency caps in-flight fetches per stage.
	Concurrency int
	Log         logger.Logger
}

// NewService wires a crawl service over the given HTTP client and sink.
func NewService(client httpclient.Client, sink RecordSink, opts Options) *Service {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.Log == nil {
		opts.Log = &logger.NopLogger{}
	}
	return &Service{
		client:      client,
		sink:        sink,
		origin:      opts.Origin,
		concurrency: opts.Concurrency,
		log:         opts.Log,
	}
}

// RunBlog crawls the whole blog behind the given index URL: page
// discovery, article texts, then comment threads. The summary is the
// only non-log signal of partial failure; the returned error is
// reserved for being called before the service is wired.
func (s *Service) RunBlog(ctx context.Context, indexURL string) (domain.RunSummary, error) {
	summary := domain.RunSummary{}
	if err := s.ready(); err != nil {
		return summary, err
	}

	last, err := s.discoverLastPage(ctx, indexURL)
	if err != nil {
		s.log.WarnObj("page discovery failed; run proceeds with no pages", "discovery_error", map[string]any{
			"index_url": indexURL,
			"error":     err.Error(),
		})
	} else {
		s.log.InfoObj("last index page discovered", "discovery_result", map[string]any{
			"index_url": indexURL,
			"last_page": last,
		})
	}
	summary.LastPage = last

	articleLinks := s.collectArticleLinks(ctx, pageURLs(indexURL, last), &summary.Pages)
	s.harvestArticles(ctx, articleLinks, &summary.Articles)
	s.harvestComments(ctx, commentURLs(articleLinks), &summary.Comments)

	s.log.InfoObj("blog crawl completed", "run_summary", summary)
	return summary, nil
}

// CrawlArticles harvests a caller-supplied list of article URLs,
// optionally with their comment threads, bypassing page discovery.
// Re-running with the same URLs appends duplicate records; the store
// does not deduplicate.
func (s *Service) CrawlArticles(ctx context.Context, articleURLs []string, withComments bool) (domain.RunSummary, error) {
	summary := domain.RunSummary{}
	if err := s.ready(); err != nil {
		return summary, err
	}

	s.harvestArticles(ctx, articleURLs, &summary.Articles)
	if withComments {
		s.harvestComments(ctx, commentURLs(articleURLs), &summary.Comments)
	}

	s.log.InfoObj("targeted crawl completed", "run_summary", summary)
	return summary, nil
}

func (s *Service) ready() error {
	if s == nil || s.client == nil || s.sink == nil {
		return fmt.Errorf("crawler service is not initialized")
	}
	return nil
}

// collectArticleLinks fans out over the index pages and merges the
// article links found on each. Per-page failures contribute no links.
func (s *Service) collectArticleLinks(ctx context.Context, pages []string, stats *domain.StageStats) []string {
	var mu sync.Mutex
	var links []string

	s.forEach(ctx, pages, func(taskCtx context.Context, pageURL string) {
		found, err := s.fetchArticleLinks(taskCtx, pageURL)
		mu.Lock()
		stats.Add(len(found), err)
		links = append(links, found...)
		mu.Unlock()

		if err != nil {
			s.log.WarnObj("index page fetch failed", "page_error", map[string]any{
				"url":   pageURL,
				"error": err.Error(),
			})
			return
		}
		s.log.InfoObj("article links collected", "page_result", map[string]any{
			"url":   pageURL,
			"links": len(found),
		})
	})

	return links
}

// harvestArticles fetches every article concurrently and persists each
// extracted body as one record the moment it is ready.
func (s *Service) harvestArticles(ctx context.Context, articles []string, stats *domain.StageStats) {
	var mu sync.Mutex

	s.forEach(ctx, articles, func(taskCtx context.Context, articleURL string) {
		stored, err := s.fetchAndStoreArticle(taskCtx, articleURL)
		mu.Lock()
		stats.Add(stored, err)
		mu.Unlock()

		if err != nil {
			s.log.WarnObj("article harvest failed", "article_error", map[string]any{
				"url":   articleURL,
				"error": err.Error(),
			})
			return
		}
		s.log.InfoObj("article persisted", "article_result", map[string]any{
			"url":     articleURL,
			"records": stored,
		})
	})
}

// harvestComments fetches every comment thread concurrently and
// persists each comment paragraph as its own record.
func (s *Service) harvestComments(ctx context.Context, threads []string, stats *domain.StageStats) {
	var mu sync.Mutex

	s.forEach(ctx, threads, func(taskCtx context.Context, threadURL string) {
		stored, err := s.fetchAndStoreComments(taskCtx, threadURL)
		mu.Lock()
		stats.Add(stored, err)
		mu.Unlock()

		if err != nil {
			s.log.WarnObj("comment thread harvest failed", "comment_error", map[string]any{
				"url":   threadURL,
				"error": err.Error(),
			})
			return
		}
		s.log.InfoObj("comments persisted", "comment_result", map[string]any{
			"url":     threadURL,
			"records": stored,
		})
	})
}

// forEach runs fn for every URL through a bounded worker group. Workers
// never return errors: failures stay isolated to their task.
func (s *Service) forEach(ctx context.Context, urls []string, fn func(ctx context.Context, url string)) {
	if len(urls) == 0 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, u := range urls {
		u := u
		g.Go(func() error {
			fn(gctx, u)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Service) fetchArticleLinks(ctx context.Context, pageURL string) ([]string, error) {
	body, err := s.fetchOK(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return extractArticleLinks(body, s.origin)
}

func (s *Service) fetchAndStoreArticle(ctx context.Context, articleURL string) (int, error) {
	body, err := s.fetchOK(ctx, articleURL)
	if err != nil {
		return 0, err
	}

	text, err := extractArticleText(body)
	if err != nil {
		return 0, err
	}

	stored, err := s.sink.AppendRecords(domain.KindArticle, articleURL, text)
	if err != nil {
		return 0, fmt.Errorf("persist article text: %w", err)
	}
	return stored, nil
}

func (s *Service) fetchAndStoreComments(ctx context.Context, threadURL string) (int, error) {
	body, err := s.fetchOK(ctx, threadURL)
	if err != nil {
		return 0, err
	}

	comments, err := extractCommentTexts(body)
	if err != nil {
		return 0, err
	}
	if len(comments) == 0 {
		return 0, nil
	}

	stored, err := s.sink.AppendRecords(domain.KindComment, threadURL, comments...)
	if err != nil {
		return 0, fmt.Errorf("persist comment texts: %w", err)
	}
	return stored, nil
}

// fetchOK performs a GET and treats any non-200 terminal status as a
// task failure. Retries already happened inside the client.
func (s *Service) fetchOK(ctx context.Context, url string) ([]byte, error) {
	resp, err := s.client.Get(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("http fetch: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}
