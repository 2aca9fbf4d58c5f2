package schemamark

import (
	"context"
	"time"
)

// GenerationStatus tracks a generation record through the pipeline.
type GenerationStatus string

// Generation record statuses. A record is created as StatusProcessing
// before any external calls so partial failures are always attributable
// to a persisted row.
const (
	StatusProcessing GenerationStatus = "processing"
	StatusSuccess    GenerationStatus = "success"
	StatusFailed     GenerationStatus = "failed"
)

// Pipeline stages recorded in failure diagnostics.
const (
	StagePreflight  = "preflight"
	StageScrape     = "scrape"
	StageGenerate   = "generate"
	StageValidate   = "validate"
	StageCredits    = "credits"
	StagePersist    = "persist"
)

// FailureInfo holds structured failure diagnostics on a generation record.
// Fields are captured server-side for observability; only Message is shown
// to end users.
type FailureInfo struct {
	Message        string `json:"message"`
	Stage          string `json:"stage"`
	Kind           string `json:"kind"` // error code, e.g. "unavailable"
	ModelProvider  string `json:"modelProvider,omitempty"`
	StackTrace     string `json:"stackTrace,omitempty"`
	RequestContext string `json:"requestContext,omitempty"`
}

// GenerationRecord is the persisted state of one generation request.
type GenerationRecord struct {
	ID           string           `json:"id"`
	UserID       string           `json:"userId"`
	URL          string           `json:"url"`
	Status       GenerationStatus `json:"status"`
	Schemas      []JSONLD         `json:"schemas,omitempty"`
	Score        *QualityScore    `json:"score,omitempty"`
	ContentHash  string           `json:"contentHash,omitempty"`
	CreditsUsed  int              `json:"creditsUsed"`
	ProcessingMS int64            `json:"processingMs"`
	Failure      *FailureInfo     `json:"failure,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *GenerationRecord) Validate() error {
	if r.UserID == "" {
		return Errorf(EINVALID, "generation user ID required")
	}
	if r.URL == "" {
		return Errorf(EINVALID, "generation URL required")
	}
	return nil
}

// GenerationUpdate holds fields settable on an existing generation record.
// Nil fields are left unchanged.
type GenerationUpdate struct {
	Status       *GenerationStatus `json:"status"`
	Schemas      []JSONLD          `json:"schemas"`
	Score        *QualityScore     `json:"score"`
	ContentHash  *string           `json:"contentHash"`
	CreditsUsed  *int              `json:"creditsUsed"`
	ProcessingMS *int64            `json:"processingMs"`
}

// GenerationFilter filters FindGenerations queries.
type GenerationFilter struct {
	ID     *string           `json:"id"`
	UserID *string           `json:"userId"`
	URL    *string           `json:"url"`
	Status *GenerationStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// GenerationService persists generation records.
type GenerationService interface {
	// CreateGeneration creates a new record, assigning its ID.
	CreateGeneration(ctx context.Context, rec *GenerationRecord) error

	// FindGenerationByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindGenerationByID(ctx context.Context, id string) (*GenerationRecord, error)

	// FindGenerations retrieves records matching the filter, newest first.
	FindGenerations(ctx context.Context, filter GenerationFilter) ([]*GenerationRecord, error)

	// UpdateGeneration applies the update to an existing record.
	// Returns ENOTFOUND if the record does not exist.
	UpdateGeneration(ctx context.Context, id string, upd GenerationUpdate) (*GenerationRecord, error)

	// MarkFailed sets the record status to failed with structured
	// diagnostics and timing, independently of the main update path.
	MarkFailed(ctx context.Context, id string, failure FailureInfo, processingMS int64) error
}

// SchemaGenerationResult is the external-facing outcome of a generation
// request. It is created per request, persisted once, and never mutated
// after persistence except by an explicit refine follow-up.
type SchemaGenerationResult struct {
	Success      bool               `json:"success"`
	RecordID     string             `json:"recordId"`
	URL          string             `json:"url"`
	Schemas      []JSONLD           `json:"schemas"`
	HTML         string             `json:"html"` // copy-pasteable <script> blocks
	Validations  []ValidationResult `json:"validations,omitempty"`
	Removed      []RemovedProperty  `json:"removedProperties,omitempty"`
	Score        *QualityScore      `json:"score,omitempty"`
	CreditsUsed  int                `json:"creditsUsed"`
	ProcessingMS int64              `json:"processingMs"`
	Error        string             `json:"error,omitempty"`
}

// UsageRecorder records usage-analytics events.
type UsageRecorder interface {
	RecordUsage(ctx context.Context, userID, event, url string) error
}
