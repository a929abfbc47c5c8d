package crawler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// paginationSelector addresses the last-page anchor inside the index
// pagination block.
const paginationSelector = "div.tm-pagination__pages > div:nth-child(3) > a:nth-child(1)"

// discoverLastPage fetches the index page and reads the last page number
// from the pagination marker. Failures mean the page count is unknown
// and the run proceeds with zero pages; the caller logs the warning.
func (s *Service) discoverLastPage(ctx context.Context, indexURL string) (int, error) {
	resp, err := s.client.Get(ctx, indexURL, nil)
	if err != nil {
		return 0, fmt.Errorf("fetch index page: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("index page returned status %d", resp.StatusCode())
	}
	return parseLastPage(resp.Body())
}

// parseLastPage extracts the last page number from index page markup.
func parseLastPage(pageHTML []byte) (int, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(pageHTML))
	if err != nil {
		return 0, fmt.Errorf("parse index html: %w", err)
	}

	sel := doc.Find(paginationSelector).First()
	if sel.Length() == 0 {
		return 0, fmt.Errorf("pagination marker %q not found", paginationSelector)
	}

	raw := strings.TrimSpace(sel.Text())
	last, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("pagination marker text %q is not a number", raw)
	}
	if last < 1 {
		return 0, fmt.Errorf("pagination marker reports %d pages", last)
	}
	return last, nil
}

// pageURLs enumerates the index page URLs for pages 1..last.
func pageURLs(indexURL string, last int) []string {
	if last < 1 {
		return nil
	}
	urls := make([]string, 0, last)
	for i := 1; i <= last; i++ {
		urls = append(urls, fmt.Sprintf("%spage%d/", indexURL, i))
	}
	return urls
}

// commentURLs derives one comment-thread URL per article URL.
func commentURLs(articleURLs []string) []string {
	urls := make([]string, 0, len(articleURLs))
	for _, u := range articleURLs {
		urls = append(urls, u+"comments/")
	}
	return urls
}
