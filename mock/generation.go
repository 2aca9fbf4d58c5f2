package mock

import (
	"context"

	"github.com/schemamark/schemamark"
)

var _ schemamark.GenerationService = (*GenerationService)(nil)

// GenerationService is a mock implementation of schemamark.GenerationService.
type GenerationService struct {
	CreateGenerationFn   func(ctx context.Context, rec *schemamark.GenerationRecord) error
	FindGenerationByIDFn func(ctx context.Context, id string) (*schemamark.GenerationRecord, error)
	FindGenerationsFn    func(ctx context.Context, filter schemamark.GenerationFilter) ([]*schemamark.GenerationRecord, error)
	UpdateGenerationFn   func(ctx context.Context, id string, upd schemamark.GenerationUpdate) (*schemamark.GenerationRecord, error)
	MarkFailedFn         func(ctx context.Context, id string, failure schemamark.FailureInfo, processingMS int64) error
}

func (s *GenerationService) CreateGeneration(ctx context.Context, rec *schemamark.GenerationRecord) error {
	return s.CreateGenerationFn(ctx, rec)
}

func (s *GenerationService) FindGenerationByID(ctx context.Context, id string) (*schemamark.GenerationRecord, error) {
	return s.FindGenerationByIDFn(ctx, id)
}

func (s *GenerationService) FindGenerations(ctx context.Context, filter schemamark.GenerationFilter) ([]*schemamark.GenerationRecord, error) {
	return s.FindGenerationsFn(ctx, filter)
}

func (s *GenerationService) UpdateGeneration(ctx context.Context, id string, upd schemamark.GenerationUpdate) (*schemamark.GenerationRecord, error) {
	return s.UpdateGenerationFn(ctx, id, upd)
}

func (s *GenerationService) MarkFailed(ctx context.Context, id string, failure schemamark.FailureInfo, processingMS int64) error {
	return s.MarkFailedFn(ctx, id, failure, processingMS)
}

var _ schemamark.UsageRecorder = (*UsageRecorder)(nil)

// UsageRecorder is a mock implementation of schemamark.UsageRecorder.
type UsageRecorder struct {
	RecordUsageFn func(ctx context.Context, userID, event, url string) error
}

func (r *UsageRecorder) RecordUsage(ctx context.Context, userID, event, url string) error {
	return r.RecordUsageFn(ctx, userID, event, url)
}
