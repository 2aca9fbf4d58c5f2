package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schemamark/schemamark"
)

// Compile-time interface verification.
var _ schemamark.PageService = (*PageService)(nil)

// PageService implements schemamark.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// UpsertPage records a discovered URL, creating the entry or bumping its
// last-seen time if it already exists.
func (s *PageService) UpsertPage(ctx context.Context, url string) (*schemamark.PageEntry, error) {
	if url == "" {
		return nil, schemamark.Errorf(schemamark.EINVALID, "page URL required")
	}

	now := time.Now().UTC().Format(time.RFC3339)

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (id, url, has_schema, generation_id, discovered_at, last_seen_at)
		VALUES (?, ?, 0, '', ?, ?)
		ON CONFLICT(url) DO UPDATE SET last_seen_at = excluded.last_seen_at
	`, uuid.New().String(), url, now, now); err != nil {
		return nil, err
	}

	return s.findPageByURL(ctx, url)
}

// MarkSchema links a generation record to the page's entry. Repeated calls
// with the same generation ID are no-ops.
func (s *PageService) MarkSchema(ctx context.Context, url, generationID string) error {
	if url == "" {
		return schemamark.Errorf(schemamark.EINVALID, "page URL required")
	}
	if generationID == "" {
		return schemamark.Errorf(schemamark.EINVALID, "generation ID required")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE pages
		SET has_schema = 1, generation_id = ?
		WHERE url = ? AND generation_id <> ?
	`, generationID, url, generationID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	// Zero rows means either the page is unknown or the link already
	// exists; only the former is an error.
	if _, err := s.findPageByURL(ctx, url); err != nil {
		return err
	}
	return nil
}

// FindPages retrieves entries matching the filter.
func (s *PageService) FindPages(ctx context.Context, filter schemamark.PageFilter) ([]*schemamark.PageEntry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, has_schema, generation_id, discovered_at, last_seen_at FROM pages WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.HasSchema != nil {
		query.WriteString(" AND has_schema = ?")
		args = append(args, boolToInt(*filter.HasSchema))
	}

	query.WriteString(" ORDER BY discovered_at DESC, url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*schemamark.PageEntry
	for rows.Next() {
		entry, err := scanPage(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *PageService) findPageByURL(ctx context.Context, url string) (*schemamark.PageEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, has_schema, generation_id, discovered_at, last_seen_at
		FROM pages
		WHERE url = ?
	`, url)

	entry, err := scanPage(row.Scan)
	if err == sql.ErrNoRows {
		return nil, schemamark.Errorf(schemamark.ENOTFOUND, "page not found")
	}
	return entry, err
}

// scanPage scans one pages row via the given scan function.
func scanPage(scan func(dest ...any) error) (*schemamark.PageEntry, error) {
	var entry schemamark.PageEntry
	var hasSchema int
	var discoveredAt, lastSeenAt string

	if err := scan(&entry.ID, &entry.URL, &hasSchema, &entry.GenerationID, &discoveredAt, &lastSeenAt); err != nil {
		return nil, err
	}

	entry.HasSchema = hasSchema != 0

	var err error
	if entry.DiscoveredAt, err = parseRFC3339(discoveredAt, "discovered_at"); err != nil {
		return nil, err
	}
	if entry.LastSeenAt, err = parseRFC3339(lastSeenAt, "last_seen_at"); err != nil {
		return nil, err
	}

	return &entry, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
