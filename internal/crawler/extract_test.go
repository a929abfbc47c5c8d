package crawler

import (
	"reflect"
	"testing"
)

func TestExtractArticleLinksPrefixesOriginInOrder(t *testing.T) {
	html := []byte(`
<html><body>
  <a class="tm-title__link" href="/ru/articles/1/">One</a>
  <a class="other" href="/ru/articles/skip/">Skip</a>
  <a class="tm-title__link" href="/ru/articles/2/">Two</a>
  <a class="tm-title__link" href="/ru/articles/3/">Three</a>
</body></html>`)

	links, err := extractArticleLinks(html, "https://habr.com")
	if err != nil {
		t.Fatalf("extractArticleLinks: %v", err)
	}

	want := []string{
		"https://habr.com/ru/articles/1/",
		"https://habr.com/ru/articles/2/",
		"https://habr.com/ru/articles/3/",
	}
	if !reflect.DeepEqual(links, want) {
		t.Fatalf("unexpected links %v", links)
	}
}

func TestExtractArticleLinksNoMatchesIsValid(t *testing.T) {
	links, err := extractArticleLinks([]byte(`<html><body><p>no anchors</p></body></html>`), "https://habr.com")
	if err != nil {
		t.Fatalf("extractArticleLinks: %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("expected no links, got %v", links)
	}
}

func TestExtractArticleTextCollapsesBlocksToNewlines(t *testing.T) {
	html := []byte(`
<html><body>
  <div class="article-formatted-body">
    <p>First paragraph with <em>markup</em> inside.</p>
    <p>Second paragraph.</p>
  </div>
</body></html>`)

	text, err := extractArticleText(html)
	if err != nil {
		t.Fatalf("extractArticleText: %v", err)
	}

	want := "First paragraph with\nmarkup\ninside.\nSecond paragraph."
	if text != want {
		t.Fatalf("unexpected article text %q", text)
	}
}

func TestExtractArticleTextEmptyContainerIsEmptyString(t *testing.T) {
	html := []byte(`<html><body><div class="article-formatted-body">   </div></body></html>`)

	text, err := extractArticleText(html)
	if err != nil {
		t.Fatalf("extractArticleText: %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty string, got %q", text)
	}
}

func TestExtractArticleTextMissingContainerIsAnError(t *testing.T) {
	if _, err := extractArticleText([]byte(`<html><body><p>wrong page</p></body></html>`)); err == nil {
		t.Fatalf("expected error for missing article body container")
	}
}

func TestExtractCommentTextsOnePerParagraph(t *testing.T) {
	html := []byte(`
<html><body>
  <div class="tm-comment__body-content_v2"><p>  first comment </p></div>
  <div class="tm-comment__body-content_v2"><p>second comment</p><p>same author, second paragraph</p></div>
</body></html>`)

	comments, err := extractCommentTexts(html)
	if err != nil {
		t.Fatalf("extractCommentTexts: %v", err)
	}

	want := []string{"first comment", "second comment", "same author, second paragraph"}
	if !reflect.DeepEqual(comments, want) {
		t.Fatalf("unexpected comments %v", comments)
	}
}

func TestExtractCommentTextsZeroParagraphsIsEmptyList(t *testing.T) {
	comments, err := extractCommentTexts([]byte(`<html><body><p>no comments block</p></body></html>`))
	if err != nil {
		t.Fatalf("extractCommentTexts: %v", err)
	}
	if len(comments) != 0 {
		t.Fatalf("expected empty list, got %v", comments)
	}
}
