package schemamark

import (
	"context"
	"strings"
	"unicode"
)

// ContentType classifies the kind of page that was scraped.
type ContentType string

// Content type classifications, derived from URL shape, Open Graph hints,
// and page structure.
const (
	ContentTypeArticle ContentType = "article"
	ContentTypeBlog    ContentType = "blog"
	ContentTypeNews    ContentType = "news"
	ContentTypeProduct ContentType = "product"
	ContentTypeAbout   ContentType = "about"
	ContentTypeContact ContentType = "contact"
	ContentTypeHome    ContentType = "home"
)

// MaxKeywords caps the keywords and tags lists on ContentMetadata.
const MaxKeywords = 10

// AuthorInfo identifies the author of a page, when one can be determined.
type AuthorInfo struct {
	Name     string `json:"name"`
	URL      string `json:"url,omitempty"`
	JobTitle string `json:"jobTitle,omitempty"`
}

// BusinessInfo identifies the organization behind a page.
type BusinessInfo struct {
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
	URL  string `json:"url,omitempty"`
}

// FAQItem is a question/answer pair extracted from a page's FAQ markup.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ContentMetadata holds structured metadata extracted from a page.
type ContentMetadata struct {
	Author       *AuthorInfo   `json:"author"`
	PublishDate  *string       `json:"publishDate"`  // ISO 8601 or nil
	ModifiedDate *string       `json:"modifiedDate"` // ISO 8601 or nil
	WordCount    int           `json:"wordCount"`
	ContentType  ContentType   `json:"contentType"`
	Language     string        `json:"language,omitempty"`
	CanonicalURL string        `json:"canonicalUrl,omitempty"`
	Images       []string      `json:"images"`
	Keywords     []string      `json:"keywords"` // deduplicated, capped at MaxKeywords
	Tags         []string      `json:"tags"`     // deduplicated, capped at MaxKeywords
	Business     *BusinessInfo `json:"businessInfo,omitempty"`
	FAQ          []FAQItem     `json:"faqContent,omitempty"`
	SocialURLs   []string      `json:"socialUrls,omitempty"`
	ExistingLD   []JSONLD      `json:"existingJsonLd,omitempty"`
}

// ContentAnalysis is the normalized representation of a scraped page.
//
// WordCount on Metadata is derived deterministically from Content after
// whitespace and punctuation normalization: it is never negative and is
// zero when Content is empty.
type ContentAnalysis struct {
	URL         string          `json:"url"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Content     string          `json:"content"`
	Metadata    ContentMetadata `json:"metadata"`
}

// Validate returns an error if the analysis contains invalid fields.
func (a *ContentAnalysis) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "analysis URL required")
	}
	if a.Metadata.WordCount < 0 {
		return Errorf(EINVALID, "word count cannot be negative")
	}
	if a.Content == "" && a.Metadata.WordCount != 0 {
		return Errorf(EINVALID, "word count must be zero for empty content")
	}
	return nil
}

// CountWords derives the word count for a content sample. Punctuation is
// normalized to whitespace first, so "end.Start" counts as two words. The
// result is never negative and is zero for empty content.
func CountWords(content string) int {
	normalized := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, content)
	return len(strings.Fields(normalized))
}

// ScrapeOptions configures a scrape request.
type ScrapeOptions struct {
	// MultiAttempt enables up to three extraction passes with increasing
	// settle delays, keeping the highest-quality sample. Used when overlay
	// interference is suspected.
	MultiAttempt bool
}

// Scraper fetches a live page and produces a normalized ContentAnalysis.
// Implementations drive a headless browser and are safe for concurrent use.
type Scraper interface {
	// Scrape navigates to the URL, waits for rendering, dismisses overlays,
	// and extracts content and metadata. The context controls timeout and
	// cancellation.
	Scrape(ctx context.Context, url string, opts ScrapeOptions) (*ContentAnalysis, error)

	// Close releases browser resources.
	Close() error
}
