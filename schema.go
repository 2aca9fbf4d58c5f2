package schemamark

import "context"

// JSONLD is a loosely-typed Schema.org JSON-LD object graph. A valid schema
// carries "@context" and "@type" keys; nested entities may carry their own
// "@type". All property access is optional-lookup.
type JSONLD map[string]any

// Type returns the schema's declared "@type", or the empty string when the
// discriminant is missing or not a string.
func (s JSONLD) Type() string {
	t, _ := s["@type"].(string)
	return t
}

// Context returns the schema's "@context" value as a string, or the empty
// string when missing or not a string.
func (s JSONLD) Context() string {
	c, _ := s["@context"].(string)
	return c
}

// Removal codes reported by the sanitizer.
const (
	RemovalSpeakable       = "SPEAKABLE_REMOVED"
	RemovalInvalidProperty = "INVALID_PROPERTY_FOR_TYPE"
)

// RemovedProperty describes a single property stripped during sanitization.
// Property is a fully-addressable dotted path; nested removals carry the
// parent key and array index, e.g. "publisher.speakable" or
// "review[2].wordCount".
type RemovedProperty struct {
	Code         string `json:"code"`
	Property     string `json:"property"`
	Message      string `json:"message"`
	RemovedValue any    `json:"removedValue"`
}

// SanitizationResult is the outcome of sanitizing one schema.
// WasModified is true iff RemovedProperties is non-empty.
type SanitizationResult struct {
	Schema            JSONLD            `json:"schema"`
	RemovedProperties []RemovedProperty `json:"removedProperties"`
	WasModified       bool              `json:"wasModified"`
}

// ValidationResult reports structural correctness of one schema.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Schema   JSONLD   `json:"schema"`
}

// Validator checks required and structural correctness of a schema.
// Its rules stay consistent with the sanitizer's property allow-lists.
type Validator interface {
	Validate(schema JSONLD) ValidationResult
}

// ScoreBreakdown holds the quality sub-scores, each 0-100.
type ScoreBreakdown struct {
	RequiredProperties    int `json:"requiredProperties"`
	RecommendedProperties int `json:"recommendedProperties"`
	AdvancedAEOFeatures   int `json:"advancedAEOFeatures"`
	ContentQuality        int `json:"contentQuality"`
}

// QualityScore is the user-facing 0-100 composite score.
// OverallScore = round(0.35*required + 0.25*recommended + 0.25*advanced +
// 0.15*contentQuality).
type QualityScore struct {
	OverallScore int            `json:"overallScore"`
	Breakdown    ScoreBreakdown `json:"breakdown"`
}

// GenerateOptions configures an AI generation request.
type GenerateOptions struct {
	// SchemaTypes optionally restricts the requested schema types
	// (e.g., "Article", "FAQPage"). Empty means the model chooses.
	SchemaTypes []string
}

// RefineResult is the outcome of a refinement request: the revised schema
// set plus a human-readable list of the changes the model made.
type RefineResult struct {
	Schemas []JSONLD `json:"schemas"`
	Changes []string `json:"changes"`
}

// Generator produces candidate JSON-LD schemas from analyzed page content.
type Generator interface {
	// Generate asks the model for candidate schemas for the analyzed page.
	// An empty result is not an error at this layer; the pipeline treats it
	// as a generation failure.
	Generate(ctx context.Context, analysis *ContentAnalysis, opts GenerateOptions) ([]JSONLD, error)

	// Refine asks the model to revise an existing schema set for a URL,
	// returning the revised schemas and a list of changes made.
	Refine(ctx context.Context, url string, schemas []JSONLD, instructions string) (*RefineResult, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
