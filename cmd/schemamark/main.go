// Command schemamark generates, refines, and manages Schema.org JSON-LD
// markup for web pages.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/schemamark/schemamark"
	"github.com/schemamark/schemamark/gemini"
	"github.com/schemamark/schemamark/goquery"
	"github.com/schemamark/schemamark/htmltomarkdown"
	smhttp "github.com/schemamark/schemamark/http"
	"github.com/schemamark/schemamark/jsonld"
	"github.com/schemamark/schemamark/pipeline"
	"github.com/schemamark/schemamark/readability"
	"github.com/schemamark/schemamark/rod"
	"github.com/schemamark/schemamark/scrape"
	smslog "github.com/schemamark/schemamark/slog"
	"github.com/schemamark/schemamark/sqlite"
	"github.com/schemamark/schemamark/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services exposed for end-to-end testing.
	GenerationService schemamark.GenerationService
	CreditService     schemamark.CreditService
	PageService       schemamark.PageService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("schemamark"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'schemamark --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SCHEMAMARK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.GenerationService = sqlite.NewGenerationService(m.DB)
	m.CreditService = sqlite.NewCreditService(m.DB)
	m.PageService = sqlite.NewPageService(m.DB)
	deps.DB = m.DB
	deps.Generations = m.GenerationService
	deps.Credits = m.CreditService
	deps.Pages = m.PageService
	deps.Sitemaps = smslog.NewLoggingSitemapService(smhttp.NewSitemapService(nil), logger)

	// The generate and refine commands need the model; generate also
	// needs a browser.
	if cmd == "generate" || cmd == "refine" {
		client, err := newGeminiClient(ctx, stderr)
		if err != nil {
			return err
		}

		tokenCounter, err := gemini.NewTokenCounter(gemini.Model)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		var generator schemamark.Generator = gemini.NewGenerator(client, tokenCounter)
		generator = smslog.NewLoggingGenerator(generator, logger)

		var scraper schemamark.Scraper
		if cmd == "generate" {
			rodFetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}

			var fetcher schemamark.Fetcher = rodFetcher
			if cli.Verbose {
				fetcher = rod.NewLoggingFetcher(fetcher, logger)
			}

			fallback := scrape.NewFallbackChain(trafilatura.NewExtractor(), readability.NewExtractor())
			extractor := goquery.NewExtractor(goquery.WithFallback(fallback))
			scraper = scrape.NewScraper(fetcher, extractor, htmltomarkdown.NewConverter())
			scraper = smslog.NewLoggingScraper(scraper, logger)
			defer scraper.Close()
		}

		deps.Pipeline = &pipeline.Pipeline{
			Checker:     smhttp.NewChecker(),
			Credits:     m.CreditService,
			Generations: m.GenerationService,
			Pages:       m.PageService,
			Usage:       sqlite.NewUsageRecorder(m.DB),
			Scraper:     scraper,
			Generator:   generator,
			Validator:   jsonld.NewValidator(),
			Limiter:     pipeline.NewDomainLimiter(1.0),
			Logger:      logger,
			Concurrency: cli.Generate.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

func newGeminiClient(ctx context.Context, stderr io.Writer) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}

func defaultDBPath() string {
	if path := os.Getenv("SCHEMAMARK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "schemamark.db"
	}
	dir := filepath.Join(home, ".schemamark")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "schemamark.db")
}
