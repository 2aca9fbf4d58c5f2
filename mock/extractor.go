package mock

import "github.com/schemamark/schemamark"

var _ schemamark.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of schemamark.Extractor.
type Extractor struct {
	ExtractFn func(html string, pageURL string) (*schemamark.ContentAnalysis, error)
}

func (e *Extractor) Extract(html string, pageURL string) (*schemamark.ContentAnalysis, error) {
	return e.ExtractFn(html, pageURL)
}

var _ schemamark.FallbackExtractor = (*FallbackExtractor)(nil)

// FallbackExtractor is a mock implementation of schemamark.FallbackExtractor.
type FallbackExtractor struct {
	ExtractContentFn func(html string) (string, string, error)
}

func (e *FallbackExtractor) ExtractContent(html string) (string, string, error) {
	return e.ExtractContentFn(html)
}

var _ schemamark.Converter = (*Converter)(nil)

// Converter is a mock implementation of schemamark.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
