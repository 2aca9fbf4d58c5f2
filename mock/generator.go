package mock

import (
	"context"

	"github.com/schemamark/schemamark"
)

var _ schemamark.Generator = (*Generator)(nil)

// Generator is a mock implementation of schemamark.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, analysis *schemamark.ContentAnalysis, opts schemamark.GenerateOptions) ([]schemamark.JSONLD, error)
	RefineFn   func(ctx context.Context, url string, schemas []schemamark.JSONLD, instructions string) (*schemamark.RefineResult, error)
}

func (g *Generator) Generate(ctx context.Context, analysis *schemamark.ContentAnalysis, opts schemamark.GenerateOptions) ([]schemamark.JSONLD, error) {
	return g.GenerateFn(ctx, analysis, opts)
}

func (g *Generator) Refine(ctx context.Context, url string, schemas []schemamark.JSONLD, instructions string) (*schemamark.RefineResult, error) {
	return g.RefineFn(ctx, url, schemas, instructions)
}

var _ schemamark.Validator = (*Validator)(nil)

// Validator is a mock implementation of schemamark.Validator.
type Validator struct {
	ValidateFn func(schema schemamark.JSONLD) schemamark.ValidationResult
}

func (v *Validator) Validate(schema schemamark.JSONLD) schemamark.ValidationResult {
	return v.ValidateFn(schema)
}

var _ schemamark.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of schemamark.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (t *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return t.CountTokensFn(ctx, text)
}
