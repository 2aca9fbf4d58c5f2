// Package schemamark provides AI-assisted Schema.org structured-data
// generation for live web pages. It scrapes a page with a headless browser,
// extracts its content and metadata, asks an AI model for candidate JSON-LD
// schemas, then mechanically sanitizes, validates, and scores the result
// before persisting it.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, gemini/, sqlite/).
package schemamark
