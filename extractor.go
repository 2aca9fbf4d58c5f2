package schemamark

// Extractor extracts structured content and metadata from rendered HTML.
type Extractor interface {
	// Extract processes raw HTML and returns a normalized analysis.
	// The pageURL is used to resolve relative links and classify the page.
	// The Content field holds the main-body content region as clean HTML;
	// callers convert it to text with a Converter.
	Extract(html string, pageURL string) (*ContentAnalysis, error)
}

// FallbackExtractor recovers main content when the ranked selector chain
// finds nothing usable. Implementations typically wrap a readability
// algorithm.
type FallbackExtractor interface {
	// ExtractContent returns the page title and main content HTML.
	ExtractContent(html string) (title string, contentHTML string, err error)
}

// Converter converts a content-region HTML fragment into clean text.
type Converter interface {
	// Convert transforms HTML content into markdown-flavored plain text.
	// The input should be clean HTML (e.g., from an Extractor).
	Convert(html string) (string, error)
}
