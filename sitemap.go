package schemamark

import (
	"context"
	"regexp"
)

// SitemapService discovers URLs from website sitemaps. Discovered URLs feed
// the page library so users can pick pages to generate schemas for.
type SitemapService interface {
	// DiscoverURLs finds all URLs from a site's sitemap. It checks
	// robots.txt for sitemap directives first, then falls back to
	// /sitemap.xml. Sitemap indexes are resolved recursively.
	//
	// A nil filter returns all URLs.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter specifies regex patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns; when set, only URLs matching at least one are kept.
	Include []*regexp.Regexp

	// Exclude patterns; matching URLs are dropped. Applied after Include.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter. A nil filter passes
// everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		ok := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}

// DomainLimiter provides per-domain rate limiting for scrape traffic.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
