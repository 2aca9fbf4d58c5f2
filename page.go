package schemamark

import (
	"context"
	"time"
)

// PageEntry is an entry in the discovered-URL library. It tracks which
// pages of a site are known and whether a schema has been generated for
// them.
type PageEntry struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	HasSchema    bool      `json:"hasSchema"`
	GenerationID string    `json:"generationId,omitempty"`
	DiscoveredAt time.Time `json:"discoveredAt"`
	LastSeenAt   time.Time `json:"lastSeenAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (p *PageEntry) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageFilter filters FindPages queries.
type PageFilter struct {
	URL       *string `json:"url"`
	HasSchema *bool   `json:"hasSchema"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageService manages the discovered-URL library.
type PageService interface {
	// UpsertPage records a discovered URL, creating the entry or bumping
	// its last-seen time if it already exists.
	UpsertPage(ctx context.Context, url string) (*PageEntry, error)

	// MarkSchema links a generation record to the page's entry and marks
	// the URL as having a schema. The link is established exactly once per
	// generation; repeated calls with the same generation ID are no-ops.
	MarkSchema(ctx context.Context, url, generationID string) error

	// FindPages retrieves entries matching the filter.
	FindPages(ctx context.Context, filter PageFilter) ([]*PageEntry, error)
}

// URLChecker probes URL reachability before any stateful pipeline work.
type URLChecker interface {
	// CheckURL returns nil when the URL resolves and responds.
	// Returns EUNREACHABLE when it does not.
	CheckURL(ctx context.Context, url string) error
}
