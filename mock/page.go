package mock

import (
	"context"

	"github.com/schemamark/schemamark"
)

var _ schemamark.PageService = (*PageService)(nil)

// PageService is a mock implementation of schemamark.PageService.
type PageService struct {
	UpsertPageFn func(ctx context.Context, url string) (*schemamark.PageEntry, error)
	MarkSchemaFn func(ctx context.Context, url, generationID string) error
	FindPagesFn  func(ctx context.Context, filter schemamark.PageFilter) ([]*schemamark.PageEntry, error)
}

func (s *PageService) UpsertPage(ctx context.Context, url string) (*schemamark.PageEntry, error) {
	return s.UpsertPageFn(ctx, url)
}

func (s *PageService) MarkSchema(ctx context.Context, url, generationID string) error {
	return s.MarkSchemaFn(ctx, url, generationID)
}

func (s *PageService) FindPages(ctx context.Context, filter schemamark.PageFilter) ([]*schemamark.PageEntry, error) {
	return s.FindPagesFn(ctx, filter)
}

var _ schemamark.URLChecker = (*URLChecker)(nil)

// URLChecker is a mock implementation of schemamark.URLChecker.
type URLChecker struct {
	CheckURLFn func(ctx context.Context, url string) error
}

func (c *URLChecker) CheckURL(ctx context.Context, url string) error {
	return c.CheckURLFn(ctx, url)
}
