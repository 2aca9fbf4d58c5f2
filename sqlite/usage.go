package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/schemamark/schemamark"
)

// Compile-time interface verification.
var _ schemamark.UsageRecorder = (*UsageRecorder)(nil)

// UsageRecorder implements schemamark.UsageRecorder using SQLite.
type UsageRecorder struct {
	db *DB
}

// NewUsageRecorder creates a new UsageRecorder.
func NewUsageRecorder(db *DB) *UsageRecorder {
	return &UsageRecorder{db: db}
}

// RecordUsage appends a usage-analytics event.
func (r *UsageRecorder) RecordUsage(ctx context.Context, userID, event, url string) error {
	if userID == "" {
		return schemamark.Errorf(schemamark.EINVALID, "user ID required")
	}
	if event == "" {
		return schemamark.Errorf(schemamark.EINVALID, "event required")
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO usage_events (id, user_id, event, url, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), userID, event, url, time.Now().UTC().Format(time.RFC3339))

	return err
}
