package sqlite_test

import (
	"context"
	"testing"

	"github.com/schemamark/schemamark"
	"github.com/schemamark/schemamark/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationService_CreateGeneration(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and timestamps", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewGenerationService(db)

		rec := &schemamark.GenerationRecord{
			UserID: "user-1",
			URL:    "https://example.com/post",
		}

		err := s.CreateGeneration(context.Background(), rec)

		require.NoError(t, err)
		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, schemamark.StatusProcessing, rec.Status)
		assert.False(t, rec.CreatedAt.IsZero())
	})

	t.Run("rejects record without user ID", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewGenerationService(db)

		err := s.CreateGeneration(context.Background(), &schemamark.GenerationRecord{URL: "https://example.com"})

		assert.Equal(t, schemamark.EINVALID, schemamark.ErrorCode(err))
	})
}

func TestGenerationService_FindGenerationByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips schemas, score, and failure payloads", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewGenerationService(db)
		ctx := context.Background()

		rec := &schemamark.GenerationRecord{
			UserID: "user-1",
			URL:    "https://example.com/post",
			Status: schemamark.StatusSuccess,
			Schemas: []schemamark.JSONLD{
				{"@context": "https://schema.org", "@type": "Article", "headline": "Hello"},
			},
			Score: &schemamark.QualityScore{
				OverallScore: 82,
				Breakdown: schemamark.ScoreBreakdown{
					RequiredProperties:    100,
					RecommendedProperties: 86,
					AdvancedAEOFeatures:   50,
					ContentQuality:        75,
				},
			},
			ContentHash: "abc123",
			CreditsUsed: 1,
		}
		require.NoError(t, s.CreateGeneration(ctx, rec))

		found, err := s.FindGenerationByID(ctx, rec.ID)

		require.NoError(t, err)
		assert.Equal(t, schemamark.StatusSuccess, found.Status)
		require.Len(t, found.Schemas, 1)
		assert.Equal(t, "Article", found.Schemas[0].Type())
		require.NotNil(t, found.Score)
		assert.Equal(t, 82, found.Score.OverallScore)
		assert.Equal(t, "abc123", found.ContentHash)
		assert.Equal(t, 1, found.CreditsUsed)
		assert.Nil(t, found.Failure)
	})

	t.Run("returns ENOTFOUND for missing record", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewGenerationService(db)

		_, err := s.FindGenerationByID(context.Background(), "missing")

		assert.Equal(t, schemamark.ENOTFOUND, schemamark.ErrorCode(err))
	})
}

func TestGenerationService_FindGenerations(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewGenerationService(db)
	ctx := context.Background()

	for _, seed := range []struct {
		user string
		url  string
	}{
		{"user-1", "https://example.com/a"},
		{"user-1", "https://example.com/b"},
		{"user-2", "https://example.com/a"},
	} {
		require.NoError(t, s.CreateGeneration(ctx, &schemamark.GenerationRecord{UserID: seed.user, URL: seed.url}))
	}

	t.Run("filters by user", func(t *testing.T) {
		user := "user-1"
		recs, err := s.FindGenerations(ctx, schemamark.GenerationFilter{UserID: &user})

		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("filters by URL", func(t *testing.T) {
		url := "https://example.com/a"
		recs, err := s.FindGenerations(ctx, schemamark.GenerationFilter{URL: &url})

		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("applies limit", func(t *testing.T) {
		recs, err := s.FindGenerations(ctx, schemamark.GenerationFilter{Limit: 1})

		require.NoError(t, err)
		assert.Len(t, recs, 1)
	})
}

func TestGenerationService_UpdateGeneration(t *testing.T) {
	t.Parallel()

	t.Run("applies partial updates", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewGenerationService(db)
		ctx := context.Background()

		rec := &schemamark.GenerationRecord{UserID: "user-1", URL: "https://example.com"}
		require.NoError(t, s.CreateGeneration(ctx, rec))

		status := schemamark.StatusSuccess
		credits := 1
		updated, err := s.UpdateGeneration(ctx, rec.ID, schemamark.GenerationUpdate{
			Status:      &status,
			CreditsUsed: &credits,
			Schemas:     []schemamark.JSONLD{{"@type": "Article"}},
		})

		require.NoError(t, err)
		assert.Equal(t, schemamark.StatusSuccess, updated.Status)
		assert.Equal(t, 1, updated.CreditsUsed)
		assert.Len(t, updated.Schemas, 1)
		// URL untouched by the update
		assert.Equal(t, "https://example.com", updated.URL)
	})

	t.Run("returns ENOTFOUND for missing record", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewGenerationService(db)

		_, err := s.UpdateGeneration(context.Background(), "missing", schemamark.GenerationUpdate{})

		assert.Equal(t, schemamark.ENOTFOUND, schemamark.ErrorCode(err))
	})
}

func TestGenerationService_MarkFailed(t *testing.T) {
	t.Parallel()

	t.Run("records structured diagnostics", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewGenerationService(db)
		ctx := context.Background()

		rec := &schemamark.GenerationRecord{UserID: "user-1", URL: "https://example.com"}
		require.NoError(t, s.CreateGeneration(ctx, rec))

		failure := schemamark.FailureInfo{
			Message: "page could not be reached",
			Stage:   schemamark.StageScrape,
			Kind:    "unreachable",
		}
		require.NoError(t, s.MarkFailed(ctx, rec.ID, failure, 1234))

		found, err := s.FindGenerationByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, schemamark.StatusFailed, found.Status)
		require.NotNil(t, found.Failure)
		assert.Equal(t, schemamark.StageScrape, found.Failure.Stage)
		assert.Equal(t, int64(1234), found.ProcessingMS)
	})

	t.Run("returns ENOTFOUND for missing record", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewGenerationService(db)

		err := s.MarkFailed(context.Background(), "missing", schemamark.FailureInfo{}, 0)

		assert.Equal(t, schemamark.ENOTFOUND, schemamark.ErrorCode(err))
	})
}
