package crawler

import (
	"fmt"
	"reflect"
	"testing"
)

func paginationHTML(last string) []byte {
	return []byte(fmt.Sprintf(`
<html><body>
  <div class="tm-pagination__pages">
    <div><a>1</a></div>
    <div><a>2</a></div>
    <div><a>%s</a></div>
  </div>
</body></html>`, last))
}

func TestParseLastPageReadsPaginationMarker(t *testing.T) {
	last, err := parseLastPage(paginationHTML("50"))
	if err != nil {
		t.Fatalf("parseLastPage: %v", err)
	}
	if last != 50 {
		t.Fatalf("expected last page 50, got %d", last)
	}
}

func TestParseLastPageMissingMarker(t *testing.T) {
	if _, err := parseLastPage([]byte(`<html><body><p>no pagination</p></body></html>`)); err == nil {
		t.Fatalf("expected error for missing pagination marker")
	}
}

func TestParseLastPageNonNumericMarker(t *testing.T) {
	if _, err := parseLastPage(paginationHTML("next")); err == nil {
		t.Fatalf("expected error for non-numeric marker text")
	}
}

func TestPageURLsEnumeratesPages(t *testing.T) {
	got := pageURLs("https://habr.com/ru/companies/ru_mts/articles/", 3)
	want := []string{
		"https://habr.com/ru/companies/ru_mts/articles/page1/",
		"https://habr.com/ru/companies/ru_mts/articles/page2/",
		"https://habr.com/ru/companies/ru_mts/articles/page3/",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected page urls %v", got)
	}
}

func TestPageURLsZeroPages(t *testing.T) {
	if got := pageURLs("https://habr.com/articles/", 0); len(got) != 0 {
		t.Fatalf("expected no page urls, got %v", got)
	}
}

func TestCommentURLsDerivation(t *testing.T) {
	got := commentURLs([]string{"https://habr.com/ru/articles/1/"})
	want := []string{"https://habr.com/ru/articles/1/comments/"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected comment urls %v", got)
	}
}
