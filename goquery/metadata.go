package goquery

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/schemamark/schemamark"
)

// Selector chains for publish and modified dates, tried in order.
var publishDateSelectors = []dateSource{
	{`meta[property="article:published_time"]`, "content"},
	{`meta[name="date"]`, "content"},
	{`meta[itemprop="datePublished"]`, "content"},
	{`time[datetime]`, "datetime"},
}

var modifiedDateSelectors = []dateSource{
	{`meta[property="article:modified_time"]`, "content"},
	{`meta[property="og:updated_time"]`, "content"},
	{`meta[itemprop="dateModified"]`, "content"},
}

type dateSource struct {
	selector string
	attr     string
}

// socialHosts identify social profile links worth surfacing.
var socialHosts = []string{
	"twitter.com", "x.com", "facebook.com", "instagram.com",
	"linkedin.com", "youtube.com", "tiktok.com", "github.com",
}

// metaContent returns the content attribute of the first matching meta tag.
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// extractTitle prefers Open Graph and Twitter card titles over the title
// tag, which often carries site-name suffixes.
func extractTitle(doc *goquery.Document) string {
	if t := metaContent(doc, `meta[property="og:title"]`); t != "" {
		return t
	}
	if t := metaContent(doc, `meta[name="twitter:title"]`); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

func extractDescription(doc *goquery.Document) string {
	if d := metaContent(doc, `meta[name="description"]`); d != "" {
		return d
	}
	if d := metaContent(doc, `meta[property="og:description"]`); d != "" {
		return d
	}
	return metaContent(doc, `meta[name="twitter:description"]`)
}

func extractCanonical(doc *goquery.Document, pageURL string) string {
	href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href")
	if !ok {
		return ""
	}
	return resolveURL(pageURL, href)
}

func extractLanguage(doc *goquery.Document) string {
	if lang, ok := doc.Find("html").First().Attr("lang"); ok && lang != "" {
		return strings.TrimSpace(lang)
	}
	// og:locale uses underscore variants (en_US); normalize to a BCP 47 tag.
	if locale := metaContent(doc, `meta[property="og:locale"]`); locale != "" {
		return strings.ReplaceAll(locale, "_", "-")
	}
	return ""
}

// extractAuthor tries metadata first, then visible byline markup.
func extractAuthor(doc *goquery.Document) *schemamark.AuthorInfo {
	if name := metaContent(doc, `meta[name="author"]`); name != "" {
		return &schemamark.AuthorInfo{Name: name}
	}

	if link := doc.Find(`a[rel="author"]`).First(); link.Length() > 0 {
		author := &schemamark.AuthorInfo{Name: strings.TrimSpace(link.Text())}
		if href, ok := link.Attr("href"); ok {
			author.URL = href
		}
		if author.Name != "" {
			return author
		}
	}

	for _, selector := range []string{`[itemprop="author"]`, ".author-name", ".byline", ".author"} {
		if name := strings.TrimSpace(doc.Find(selector).First().Text()); name != "" {
			return &schemamark.AuthorInfo{Name: strings.TrimPrefix(name, "By ")}
		}
	}

	return nil
}

func extractDate(doc *goquery.Document, sources []dateSource) *string {
	for _, src := range sources {
		if value, ok := doc.Find(src.selector).First().Attr(src.attr); ok {
			value = strings.TrimSpace(value)
			if value != "" {
				return &value
			}
		}
	}
	return nil
}

// extractImages collects Open Graph, Twitter card, and content images,
// deduplicated in document order.
func extractImages(doc *goquery.Document, pageURL string) []string {
	seen := make(map[string]bool)
	var images []string

	add := func(raw string) {
		resolved := resolveURL(pageURL, raw)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		images = append(images, resolved)
	}

	doc.Find(`meta[property="og:image"], meta[name="twitter:image"]`).Each(func(_ int, sel *goquery.Selection) {
		if content, ok := sel.Attr("content"); ok {
			add(content)
		}
	})

	doc.Find("article img[src], main img[src]").Each(func(_ int, sel *goquery.Selection) {
		if src, ok := sel.Attr("src"); ok {
			add(src)
		}
	})

	return images
}

func extractKeywords(doc *goquery.Document) []string {
	raw := metaContent(doc, `meta[name="keywords"]`)
	if raw == "" {
		return nil
	}
	return dedupeCapped(strings.Split(raw, ","))
}

func extractTags(doc *goquery.Document) []string {
	var tags []string
	doc.Find(`meta[property="article:tag"]`).Each(func(_ int, sel *goquery.Selection) {
		if content, ok := sel.Attr("content"); ok {
			tags = append(tags, content)
		}
	})
	return dedupeCapped(tags)
}

// dedupeCapped trims, deduplicates case-insensitively, and caps the list
// at schemamark.MaxKeywords, preserving first-seen order.
func dedupeCapped(values []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
		if len(out) == schemamark.MaxKeywords {
			break
		}
	}
	return out
}

func extractBusiness(doc *goquery.Document, pageURL string) *schemamark.BusinessInfo {
	name := metaContent(doc, `meta[property="og:site_name"]`)
	if name == "" {
		return nil
	}

	info := &schemamark.BusinessInfo{Name: name}
	if u, err := url.Parse(pageURL); err == nil {
		info.URL = u.Scheme + "://" + u.Host
	}
	if logo, ok := doc.Find(`link[rel="apple-touch-icon"], link[rel="icon"]`).First().Attr("href"); ok {
		info.Logo = resolveURL(pageURL, logo)
	}
	return info
}

func extractSocialLinks(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		u, err := url.Parse(href)
		if err != nil || u.Host == "" {
			return
		}
		host := strings.TrimPrefix(u.Host, "www.")
		for _, social := range socialHosts {
			if host == social && !seen[href] {
				seen[href] = true
				links = append(links, href)
				break
			}
		}
	})

	return links
}

// extractExistingJSONLD parses structured data already embedded in the
// page. Both single objects and arrays are accepted; malformed payloads
// are skipped.
func extractExistingJSONLD(doc *goquery.Document) []schemamark.JSONLD {
	var schemas []schemamark.JSONLD

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		payload := strings.TrimSpace(sel.Text())
		if payload == "" {
			return
		}

		var single map[string]any
		if err := json.Unmarshal([]byte(payload), &single); err == nil {
			schemas = append(schemas, schemamark.JSONLD(single))
			return
		}

		var many []map[string]any
		if err := json.Unmarshal([]byte(payload), &many); err == nil {
			for _, m := range many {
				schemas = append(schemas, schemamark.JSONLD(m))
			}
		}
	})

	return schemas
}

// resolveURL resolves a possibly-relative reference against the page URL.
// Returns the empty string for unparseable input.
func resolveURL(pageURL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}
