package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/schemamark/schemamark"
)

// contentSelectors is the ranked chain of content-region selectors, tried
// in order. Kept as data so new site patterns can be added without
// touching the extraction flow.
var contentSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
	".post-content",
	".article-content",
	".entry-content",
	".article-body",
	".content-body",
	"#content",
	".content",
}

// noiseSelectors are elements removed from the content region before
// capture. They contribute chrome, not content.
var noiseSelectors = []string{
	"script", "style", "noscript", "iframe",
	"nav", "header", "footer", "aside",
	"form", "button",
	".sidebar", ".menu", ".advertisement", ".ads",
	".social-share", ".related-posts", ".comments",
}

// minContentChars is the minimum text length for a selector match to be
// considered real content rather than an empty wrapper.
const minContentChars = 100

// extractContent isolates the main content region. It tries the ranked
// selector chain first and falls back to the whole body. Returns the
// cleaned region HTML and its flattened text.
func extractContent(doc *goquery.Document) (string, string) {
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		html, text := cleanRegion(sel)
		if len(text) >= minContentChars {
			return html, text
		}
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return "", ""
	}
	return cleanRegion(body)
}

// cleanRegion strips noise elements from a selection and returns its HTML
// and text. The selection is cloned so cleaning does not disturb metadata
// extraction elsewhere in the document.
func cleanRegion(sel *goquery.Selection) (string, string) {
	clone := sel.Clone()
	for _, noise := range noiseSelectors {
		clone.Find(noise).Remove()
	}

	html, err := goquery.OuterHtml(clone)
	if err != nil {
		return "", ""
	}
	return html, strings.TrimSpace(clone.Text())
}

// pathHints maps URL path fragments to content types, checked in order.
var pathHints = []struct {
	fragment    string
	contentType schemamark.ContentType
}{
	{"/blog", schemamark.ContentTypeBlog},
	{"/news", schemamark.ContentTypeNews},
	{"/product", schemamark.ContentTypeProduct},
	{"/shop", schemamark.ContentTypeProduct},
	{"/about", schemamark.ContentTypeAbout},
	{"/contact", schemamark.ContentTypeContact},
}

// classify determines the page's content type from its URL path, Open
// Graph hints, and markup structure.
func classify(doc *goquery.Document, pageURL string) schemamark.ContentType {
	if u, err := url.Parse(pageURL); err == nil {
		path := strings.ToLower(strings.TrimSuffix(u.Path, "/"))
		if path == "" {
			return schemamark.ContentTypeHome
		}
		for _, hint := range pathHints {
			if strings.Contains(path, hint.fragment) {
				return hint.contentType
			}
		}
	}

	switch metaContent(doc, `meta[property="og:type"]`) {
	case "article":
		return schemamark.ContentTypeArticle
	case "product":
		return schemamark.ContentTypeProduct
	}

	return schemamark.ContentTypeArticle
}
