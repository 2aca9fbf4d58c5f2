// Package pipeline orchestrates schema generation end to end: reachability
// pre-flight, credit checks, scraping, AI generation, sanitization,
// validation, scoring, and persistence with a credit ledger. Failures at
// any stage after record creation are persisted with structured
// diagnostics so a processing row never goes stale.
package pipeline

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/schemamark/schemamark"
	"github.com/schemamark/schemamark/jsonld"
	"golang.org/x/sync/errgroup"
)

// GenerateCost is the credit price of one successful generation.
const GenerateCost = 1

// defaultBatchConcurrency bounds parallel batch requests. The shared
// browser is the scarce resource, so the default stays low.
const defaultBatchConcurrency = 3

// GenerateRequest describes one schema-generation request.
type GenerateRequest struct {
	UserID  string
	URL     string
	Options schemamark.GenerateOptions
	Scrape  schemamark.ScrapeOptions
}

// Validate returns an error if the request is incomplete.
func (r *GenerateRequest) Validate() error {
	if r.UserID == "" {
		return schemamark.Errorf(schemamark.EINVALID, "user ID required")
	}
	if r.URL == "" {
		return schemamark.Errorf(schemamark.EINVALID, "URL required")
	}
	return nil
}

// RefineOutcome is the result of a refine request.
type RefineOutcome struct {
	Record  *schemamark.GenerationRecord
	Changes []string
	HTML    string
}

// BatchItem is the per-URL outcome of a batch generation.
type BatchItem struct {
	URL    string
	Result *schemamark.SchemaGenerationResult
	Err    error
}

// Pipeline orchestrates schema generation.
type Pipeline struct {
	Checker     schemamark.URLChecker
	Credits     schemamark.CreditService
	Generations schemamark.GenerationService
	Pages       schemamark.PageService
	Usage       schemamark.UsageRecorder
	Scraper     schemamark.Scraper
	Generator   schemamark.Generator
	Validator   schemamark.Validator
	Limiter     schemamark.DomainLimiter
	Logger      *slog.Logger

	// Concurrency bounds GenerateBatch; zero means the default.
	Concurrency int

	// RetryDelays overrides the credit-contention backoff, settable so
	// tests do not wait on real delays.
	RetryDelays []time.Duration

	// AllowUnvalidated keeps schemas that fail validation instead of
	// dropping them. Set only by test harnesses, never by production
	// wiring.
	AllowUnvalidated bool
}

// errCreditContention marks a credit decrement that lost the row lock but
// should win on a retry.
var errCreditContention = errors.New("credit contention")

// Generate runs the full pipeline for one URL.
func (p *Pipeline) Generate(ctx context.Context, req GenerateRequest) (*schemamark.SchemaGenerationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	// Pre-flight costs nothing and creates no record.
	if err := p.Checker.CheckURL(ctx, req.URL); err != nil {
		return nil, err
	}

	balance, err := p.Credits.Balance(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if balance < GenerateCost {
		return nil, schemamark.Errorf(schemamark.ENOCREDITS, "insufficient credits: balance is %d", balance)
	}

	rec := &schemamark.GenerationRecord{
		UserID: req.UserID,
		URL:    req.URL,
		Status: schemamark.StatusProcessing,
	}
	if err := p.Generations.CreateGeneration(ctx, rec); err != nil {
		return nil, err
	}

	if err := p.Usage.RecordUsage(ctx, req.UserID, "schema_generation_started", req.URL); err != nil {
		// Analytics must never block generation.
		p.logf(ctx, "usage event failed", "url", req.URL, "error", err)
	}

	analysis, err := p.scrape(ctx, req)
	if err != nil {
		return nil, p.fail(ctx, rec, err, schemamark.StageScrape, start)
	}

	candidates, err := p.Generator.Generate(ctx, analysis, req.Options)
	if err != nil {
		return nil, p.fail(ctx, rec, err, schemamark.StageGenerate, start)
	}
	if len(candidates) == 0 {
		err := schemamark.Errorf(schemamark.ENOSCHEMAS, "model produced no schemas for %s", req.URL)
		return nil, p.fail(ctx, rec, err, schemamark.StageGenerate, start)
	}

	schemas, removed, validations := p.sanitizeAndValidate(candidates)
	if len(schemas) == 0 {
		err := schemamark.Errorf(schemamark.EINVALID, "no candidate schema passed validation")
		return nil, p.fail(ctx, rec, err, schemamark.StageValidate, start)
	}

	if err := p.consumeCredit(ctx, req.UserID, req.URL); err != nil {
		return nil, p.fail(ctx, rec, err, schemamark.StageCredits, start)
	}

	score := jsonld.CalculateScore(schemas)
	result, err := p.persistSuccess(ctx, rec, req, schemas, &score, analysis, start)
	if err != nil {
		if refundErr := p.Credits.Refund(ctx, req.UserID, GenerateCost, "refund: persistence failure for "+req.URL); refundErr != nil {
			p.logf(ctx, "credit refund failed", "user", req.UserID, "error", refundErr)
		}
		return nil, p.fail(ctx, rec, err, schemamark.StagePersist, start)
	}

	result.Validations = validations
	result.Removed = removed
	return result, nil
}

// Refine revises a stored schema set per the user's instructions. It never
// re-scrapes and never charges credits.
func (p *Pipeline) Refine(ctx context.Context, recordID, instructions string) (*RefineOutcome, error) {
	rec, err := p.Generations.FindGenerationByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if len(rec.Schemas) == 0 {
		return nil, schemamark.Errorf(schemamark.ENOSCHEMAS, "generation %s has no schemas to refine", recordID)
	}

	refined, err := p.Generator.Refine(ctx, rec.URL, rec.Schemas, instructions)
	if err != nil {
		return nil, err
	}
	if len(refined.Schemas) == 0 {
		return nil, schemamark.Errorf(schemamark.ENOSCHEMAS, "refinement produced no schemas")
	}

	schemas, _, _ := p.sanitizeAndValidate(refined.Schemas)
	if len(schemas) == 0 {
		return nil, schemamark.Errorf(schemamark.EINVALID, "no refined schema passed validation")
	}

	score := jsonld.CalculateScore(schemas)
	status := schemamark.StatusSuccess
	updated, err := p.Generations.UpdateGeneration(ctx, recordID, schemamark.GenerationUpdate{
		Status:  &status,
		Schemas: schemas,
		Score:   &score,
	})
	if err != nil {
		return nil, err
	}

	html, err := jsonld.Embed(schemas)
	if err != nil {
		return nil, err
	}

	return &RefineOutcome{
		Record:  updated,
		Changes: refined.Changes,
		HTML:    html,
	}, nil
}

// GenerateBatch runs Generate for each URL with bounded concurrency.
// Outcomes are independent per URL; one failure never cancels the rest.
func (p *Pipeline) GenerateBatch(ctx context.Context, userID string, urls []string, opts schemamark.GenerateOptions) []BatchItem {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}

	items := make([]BatchItem, len(urls))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, u := range urls {
		g.Go(func() error {
			result, err := p.Generate(ctx, GenerateRequest{
				UserID:  userID,
				URL:     u,
				Options: opts,
			})
			items[i] = BatchItem{URL: u, Result: result, Err: err}
			return nil
		})
	}
	g.Wait()

	return items
}

// scrape waits for the domain's rate-limit slot and runs the scraper.
func (p *Pipeline) scrape(ctx context.Context, req GenerateRequest) (*schemamark.ContentAnalysis, error) {
	if p.Limiter != nil {
		if domain := domainOf(req.URL); domain != "" {
			if err := p.Limiter.Wait(ctx, domain); err != nil {
				return nil, err
			}
		}
	}
	return p.Scraper.Scrape(ctx, req.URL, req.Scrape)
}

// sanitizeAndValidate cleans each candidate and drops the ones that fail
// validation (unless AllowUnvalidated is set).
func (p *Pipeline) sanitizeAndValidate(candidates []schemamark.JSONLD) ([]schemamark.JSONLD, []schemamark.RemovedProperty, []schemamark.ValidationResult) {
	var kept []schemamark.JSONLD
	var removed []schemamark.RemovedProperty
	var validations []schemamark.ValidationResult

	for _, candidate := range candidates {
		sanitized := jsonld.Sanitize(candidate)
		removed = append(removed, sanitized.RemovedProperties...)

		validation := p.Validator.Validate(sanitized.Schema)
		validations = append(validations, validation)

		if validation.IsValid || p.AllowUnvalidated {
			kept = append(kept, sanitized.Schema)
		}
	}

	return kept, removed, validations
}

// consumeCredit decrements the user's balance, retrying when the decrement
// loses a row lock while funds remain available.
func (p *Pipeline) consumeCredit(ctx context.Context, userID, pageURL string) error {
	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	policy := RetryPolicy{
		Delays:    delays,
		Retryable: func(err error) bool { return errors.Is(err, errCreditContention) },
	}

	err := policy.Do(ctx, func() error {
		ok, err := p.Credits.Consume(ctx, userID, GenerateCost, "schema generation for "+pageURL)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		// A false return is either an empty wallet or lost lock
		// contention; only the latter is worth another attempt.
		balance, balErr := p.Credits.Balance(ctx, userID)
		if balErr == nil && balance >= GenerateCost {
			return errCreditContention
		}
		return schemamark.Errorf(schemamark.ENOCREDITS, "insufficient credits")
	})

	if errors.Is(err, errCreditContention) {
		return schemamark.Errorf(schemamark.ENOCREDITS, "credit decrement kept losing contention")
	}
	return err
}

// persistSuccess writes the final record state, marks the page library,
// and assembles the external result.
func (p *Pipeline) persistSuccess(ctx context.Context, rec *schemamark.GenerationRecord, req GenerateRequest, schemas []schemamark.JSONLD, score *schemamark.QualityScore, analysis *schemamark.ContentAnalysis, start time.Time) (*schemamark.SchemaGenerationResult, error) {
	html, err := jsonld.Embed(schemas)
	if err != nil {
		return nil, err
	}

	processingMS := time.Since(start).Milliseconds()
	status := schemamark.StatusSuccess
	credits := GenerateCost
	contentHash := hashContent(analysis.Content)

	if _, err := p.Generations.UpdateGeneration(ctx, rec.ID, schemamark.GenerationUpdate{
		Status:       &status,
		Schemas:      schemas,
		Score:        score,
		ContentHash:  &contentHash,
		CreditsUsed:  &credits,
		ProcessingMS: &processingMS,
	}); err != nil {
		return nil, err
	}

	// Page-library bookkeeping is best-effort; the generation itself is
	// already durable.
	if _, err := p.Pages.UpsertPage(ctx, req.URL); err != nil {
		p.logf(ctx, "page upsert failed", "url", req.URL, "error", err)
	} else if err := p.Pages.MarkSchema(ctx, req.URL, rec.ID); err != nil {
		p.logf(ctx, "page schema mark failed", "url", req.URL, "error", err)
	}

	if err := p.Usage.RecordUsage(ctx, req.UserID, "schema_generation_succeeded", req.URL); err != nil {
		p.logf(ctx, "usage event failed", "url", req.URL, "error", err)
	}

	return &schemamark.SchemaGenerationResult{
		Success:      true,
		RecordID:     rec.ID,
		URL:          req.URL,
		Schemas:      schemas,
		HTML:         html,
		Score:        score,
		CreditsUsed:  credits,
		ProcessingMS: processingMS,
	}, nil
}

// fail records structured failure diagnostics and returns the original
// error for the caller.
func (p *Pipeline) fail(ctx context.Context, rec *schemamark.GenerationRecord, cause error, stage string, start time.Time) error {
	failure := schemamark.FailureInfo{
		Message:        schemamark.ErrorMessage(cause),
		Stage:          stage,
		Kind:           schemamark.ErrorCode(cause),
		RequestContext: fmt.Sprintf("url=%s user=%s", rec.URL, rec.UserID),
	}
	if stage == schemamark.StageGenerate {
		failure.ModelProvider = "gemini"
	}

	if err := p.Generations.MarkFailed(ctx, rec.ID, failure, time.Since(start).Milliseconds()); err != nil {
		p.logf(ctx, "failure diagnostics write failed", "record", rec.ID, "error", err)
	}
	return cause
}

func (p *Pipeline) logf(ctx context.Context, msg string, args ...any) {
	if p.Logger != nil {
		p.Logger.ErrorContext(ctx, msg, args...)
	}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// domainOf extracts the host from a URL, empty when unparseable.
func domainOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
