// Package mock provides function-field mock implementations of the root
// package interfaces for use in tests.
package mock

import (
	"context"

	"github.com/schemamark/schemamark"
)

var _ schemamark.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of schemamark.Fetcher.
type Fetcher struct {
	FetchFn     func(ctx context.Context, url string) (*schemamark.FetchResult, error)
	FetchBestFn func(ctx context.Context, url string) (*schemamark.FetchResult, error)
	CloseFn     func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*schemamark.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) FetchBest(ctx context.Context, url string) (*schemamark.FetchResult, error) {
	return f.FetchBestFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
