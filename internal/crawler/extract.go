package crawler

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Selectors tied to the blog's fixed markup. Link and comment selectors
// matching nothing is a valid outcome; an absent article body container
// is not, and is surfaced as an error.
const (
	articleLinkSelector = "a.tm-title__link"
	articleBodySelector = "div.article-formatted-body"
	commentSelector     = "div.tm-comment__body-content_v2 p"
)

// extractArticleLinks returns the absolute URL of every article anchor
// on an index page, in document order. Duplicates are kept.
func extractArticleLinks(pageHTML []byte, origin string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("parse page html: %w", err)
	}

	var links []string
	doc.Find(articleLinkSelector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		links = append(links, origin+strings.TrimSpace(href))
	})
	return links, nil
}

// extractArticleText returns the text of the article body container with
// block separation collapsed to newlines and surrounding whitespace
// trimmed. An empty container yields an empty string; a missing
// container is a markup contract violation and yields an error.
func extractArticleText(pageHTML []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(pageHTML))
	if err != nil {
		return "", fmt.Errorf("parse article html: %w", err)
	}

	sel := doc.Find(articleBodySelector)
	if sel.Length() == 0 {
		return "", fmt.Errorf("article body container %q not found", articleBodySelector)
	}
	return textWithNewlines(sel), nil
}

// extractCommentTexts returns one trimmed string per comment paragraph.
// Zero paragraphs is a valid, empty result.
func extractCommentTexts(pageHTML []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("parse comments html: %w", err)
	}

	var comments []string
	doc.Find(commentSelector).Each(func(_ int, sel *goquery.Selection) {
		comments = append(comments, strings.TrimSpace(sel.Text()))
	})
	return comments, nil
}

// textWithNewlines joins the non-blank text nodes under the selection
// with single newlines, so block boundaries collapse to one separator.
func textWithNewlines(sel *goquery.Selection) string {
	var parts []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, "\n")
}
