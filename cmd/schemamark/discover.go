package main

import (
	"fmt"
	"regexp"

	"github.com/schemamark/schemamark"
	"github.com/schemamark/schemamark/bloom"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	filter, err := compileFilter(c.Filter, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", schemamark.ErrorMessage(err))
		return err
	}

	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", schemamark.ErrorMessage(err))
		return err
	}

	// Sitemap indexes can repeat URLs across child sitemaps; collapse
	// trivial variants too.
	seen := bloom.NewSeenFilter(uint(max(len(urls), 1024)), 0.001)
	urls = seen.FilterNew(urls)

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No URLs discovered.")
		return nil
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}

	if c.Save {
		saved := 0
		for _, u := range urls {
			if _, err := deps.Pages.UpsertPage(deps.Ctx, u); err != nil {
				fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", u, schemamark.ErrorMessage(err))
				continue
			}
			saved++
		}
		fmt.Fprintf(deps.Stdout, "Saved %d page(s) to the library.\n", saved)
	}

	return nil
}

// compileFilter validates regex patterns early so a bad pattern fails
// before any network traffic.
func compileFilter(include, exclude []string) (*schemamark.URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}

	filter := &schemamark.URLFilter{}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, schemamark.Errorf(schemamark.EINVALID, "invalid filter pattern %q: %v", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, schemamark.Errorf(schemamark.EINVALID, "invalid exclude pattern %q: %v", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}
