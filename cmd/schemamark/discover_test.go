package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/schemamark/schemamark"
	main "github.com/schemamark/schemamark/cmd/schemamark"
	"github.com/schemamark/schemamark/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints discovered URLs", func(t *testing.T) {
		t.Parallel()

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, baseURL string, filter *schemamark.URLFilter) ([]string, error) {
				assert.Equal(t, "https://example.com", baseURL)
				assert.Nil(t, filter)
				return []string{
					"https://example.com/",
					"https://example.com/pricing",
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Sitemaps: sitemaps,
		}

		cmd := &main.DiscoverCmd{URL: "https://example.com"}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "https://example.com/pricing")
	})

	t.Run("collapses duplicate URLs across sitemaps", func(t *testing.T) {
		t.Parallel()

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, _ *schemamark.URLFilter) ([]string, error) {
				return []string{
					"https://example.com/pricing",
					"https://example.com/pricing/",
					"http://example.com/pricing",
				}, nil
			},
		}

		saved := 0
		pages := &mock.PageService{
			UpsertPageFn: func(_ context.Context, url string) (*schemamark.PageEntry, error) {
				saved++
				return &schemamark.PageEntry{URL: url}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Sitemaps: sitemaps,
			Pages:    pages,
		}

		cmd := &main.DiscoverCmd{URL: "https://example.com", Save: true}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, 1, saved)
		assert.Contains(t, stdout.String(), "Saved 1 page(s)")
	})

	t.Run("passes compiled filters to the sitemap service", func(t *testing.T) {
		t.Parallel()

		var captured *schemamark.URLFilter
		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, filter *schemamark.URLFilter) ([]string, error) {
				captured = filter
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Sitemaps: sitemaps,
		}

		cmd := &main.DiscoverCmd{
			URL:     "https://example.com",
			Filter:  []string{`/blog/`},
			Exclude: []string{`\?page=`},
		}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, captured)
		assert.Len(t, captured.Include, 1)
		assert.Len(t, captured.Exclude, 1)
		assert.Contains(t, stdout.String(), "No URLs discovered")
	})

	t.Run("rejects invalid filter pattern before any traffic", func(t *testing.T) {
		t.Parallel()

		called := false
		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, _ *schemamark.URLFilter) ([]string, error) {
				called = true
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Sitemaps: sitemaps,
		}

		cmd := &main.DiscoverCmd{URL: "https://example.com", Filter: []string{`[invalid`}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, schemamark.EINVALID, schemamark.ErrorCode(err))
		assert.False(t, called)
	})
}
