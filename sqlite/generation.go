package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schemamark/schemamark"
)

// Compile-time interface verification.
var _ schemamark.GenerationService = (*GenerationService)(nil)

// GenerationService implements schemamark.GenerationService using SQLite.
type GenerationService struct {
	db *DB
}

// NewGenerationService creates a new GenerationService.
func NewGenerationService(db *DB) *GenerationService {
	return &GenerationService{db: db}
}

// CreateGeneration creates a new record, assigning its ID.
func (s *GenerationService) CreateGeneration(ctx context.Context, rec *schemamark.GenerationRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	if rec.Status == "" {
		rec.Status = schemamark.StatusProcessing
	}
	rec.CreatedAt = time.Now().UTC()
	rec.UpdatedAt = rec.CreatedAt

	schemas, err := encodeJSON(rec.Schemas)
	if err != nil {
		return err
	}
	score, err := encodeJSON(rec.Score)
	if err != nil {
		return err
	}
	failure, err := encodeJSON(rec.Failure)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO generations (id, user_id, url, status, schemas, score, content_hash, credits_used, processing_ms, failure, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.UserID, rec.URL, string(rec.Status), schemas, score, rec.ContentHash,
		rec.CreditsUsed, rec.ProcessingMS, failure,
		rec.CreatedAt.Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindGenerationByID retrieves a record by ID.
func (s *GenerationService) FindGenerationByID(ctx context.Context, id string) (*schemamark.GenerationRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, url, status, schemas, score, content_hash, credits_used, processing_ms, failure, created_at, updated_at
		FROM generations
		WHERE id = ?
	`, id)

	rec, err := scanGeneration(row.Scan)
	if err == sql.ErrNoRows {
		return nil, schemamark.Errorf(schemamark.ENOTFOUND, "generation not found")
	}
	return rec, err
}

// FindGenerations retrieves records matching the filter, newest first.
func (s *GenerationService) FindGenerations(ctx context.Context, filter schemamark.GenerationFilter) ([]*schemamark.GenerationRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, user_id, url, status, schemas, score, content_hash, credits_used, processing_ms, failure, created_at, updated_at FROM generations WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.UserID != nil {
		query.WriteString(" AND user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY created_at DESC, id DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*schemamark.GenerationRecord
	for rows.Next() {
		rec, err := scanGeneration(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// UpdateGeneration applies the update to an existing record.
func (s *GenerationService) UpdateGeneration(ctx context.Context, id string, upd schemamark.GenerationUpdate) (*schemamark.GenerationRecord, error) {
	rec, err := s.FindGenerationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		rec.Status = *upd.Status
	}
	if upd.Schemas != nil {
		rec.Schemas = upd.Schemas
	}
	if upd.Score != nil {
		rec.Score = upd.Score
	}
	if upd.ContentHash != nil {
		rec.ContentHash = *upd.ContentHash
	}
	if upd.CreditsUsed != nil {
		rec.CreditsUsed = *upd.CreditsUsed
	}
	if upd.ProcessingMS != nil {
		rec.ProcessingMS = *upd.ProcessingMS
	}
	rec.UpdatedAt = time.Now().UTC()

	schemas, err := encodeJSON(rec.Schemas)
	if err != nil {
		return nil, err
	}
	score, err := encodeJSON(rec.Score)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE generations
		SET status = ?, schemas = ?, score = ?, content_hash = ?, credits_used = ?, processing_ms = ?, updated_at = ?
		WHERE id = ?
	`, string(rec.Status), schemas, score, rec.ContentHash, rec.CreditsUsed, rec.ProcessingMS,
		rec.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return rec, nil
}

// MarkFailed sets the record status to failed with structured diagnostics.
func (s *GenerationService) MarkFailed(ctx context.Context, id string, failure schemamark.FailureInfo, processingMS int64) error {
	encoded, err := encodeJSON(&failure)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE generations
		SET status = ?, failure = ?, processing_ms = ?, updated_at = ?
		WHERE id = ?
	`, string(schemamark.StatusFailed), encoded, processingMS,
		time.Now().UTC().Format(time.RFC3339), id)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return schemamark.Errorf(schemamark.ENOTFOUND, "generation not found")
	}

	return nil
}

// scanGeneration scans one generations row via the given scan function.
func scanGeneration(scan func(dest ...any) error) (*schemamark.GenerationRecord, error) {
	var rec schemamark.GenerationRecord
	var status, schemas, score, failure, createdAt, updatedAt string

	if err := scan(&rec.ID, &rec.UserID, &rec.URL, &status, &schemas, &score, &rec.ContentHash,
		&rec.CreditsUsed, &rec.ProcessingMS, &failure, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	rec.Status = schemamark.GenerationStatus(status)

	if schemas != "" {
		if err := json.Unmarshal([]byte(schemas), &rec.Schemas); err != nil {
			return nil, schemamark.Errorf(schemamark.EINTERNAL, "failed to decode schemas payload: %v", err)
		}
	}
	if score != "" {
		rec.Score = &schemamark.QualityScore{}
		if err := json.Unmarshal([]byte(score), rec.Score); err != nil {
			return nil, schemamark.Errorf(schemamark.EINTERNAL, "failed to decode score payload: %v", err)
		}
	}
	if failure != "" {
		rec.Failure = &schemamark.FailureInfo{}
		if err := json.Unmarshal([]byte(failure), rec.Failure); err != nil {
			return nil, schemamark.Errorf(schemamark.EINTERNAL, "failed to decode failure payload: %v", err)
		}
	}

	var err error
	if rec.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &rec, nil
}

// encodeJSON marshals v, mapping nil (and typed-nil pointers) to the empty
// string so absent payloads stay distinguishable from encoded zero values.
func encodeJSON(v any) (string, error) {
	switch val := v.(type) {
	case []schemamark.JSONLD:
		if val == nil {
			return "", nil
		}
	case *schemamark.QualityScore:
		if val == nil {
			return "", nil
		}
	case *schemamark.FailureInfo:
		if val == nil {
			return "", nil
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", schemamark.Errorf(schemamark.EINVALID, "failed to encode payload: %v", err)
	}
	return string(b), nil
}
