package main

import (
	"fmt"
	"time"

	"github.com/schemamark/schemamark"
	"github.com/schemamark/schemamark/fs"
	"github.com/schemamark/schemamark/pipeline"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	opts := schemamark.GenerateOptions{SchemaTypes: c.Types}
	scrapeOpts := schemamark.ScrapeOptions{MultiAttempt: c.MultiAttempt}

	if len(c.URLs) == 1 {
		result, err := deps.Pipeline.Generate(deps.Ctx, pipeline.GenerateRequest{
			UserID:  c.User,
			URL:     c.URLs[0],
			Options: opts,
			Scrape:  scrapeOpts,
		})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", schemamark.ErrorMessage(err))
			return err
		}
		if c.OutDir != "" {
			return writeSnippet(deps, c.OutDir, result)
		}
		printResult(deps, result)
		return nil
	}

	items := deps.Pipeline.GenerateBatch(deps.Ctx, c.User, c.URLs, opts)

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", item.URL, schemamark.ErrorMessage(item.Err))
			continue
		}
		if c.OutDir != "" {
			if err := writeSnippet(deps, c.OutDir, item.Result); err != nil {
				failed++
				continue
			}
		} else {
			fmt.Fprintf(deps.Stdout, "%s  %s  score %d\n",
				item.Result.RecordID, item.URL, overallScore(item.Result))
		}
	}

	fmt.Fprintf(deps.Stdout, "Generated %d of %d. Use 'schemamark show <id> --html' for markup.\n",
		len(items)-failed, len(items))

	if failed == len(items) {
		return schemamark.Errorf(schemamark.EINTERNAL, "all %d generations failed", failed)
	}
	return nil
}

func writeSnippet(deps *Dependencies, dir string, result *schemamark.SchemaGenerationResult) error {
	path, err := fs.NewSnippetWriter(dir).WriteSnippet(&schemamark.GenerationRecord{
		ID:        result.RecordID,
		URL:       result.URL,
		Schemas:   result.Schemas,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", result.URL, schemamark.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	return nil
}

func printResult(deps *Dependencies, result *schemamark.SchemaGenerationResult) {
	fmt.Fprintf(deps.Stdout, "Generated %d schema(s) for %s (record %s, %d credit(s), %dms)\n",
		len(result.Schemas), result.URL, result.RecordID, result.CreditsUsed, result.ProcessingMS)

	if result.Score != nil {
		fmt.Fprintf(deps.Stdout, "Quality score: %d/100\n", result.Score.OverallScore)
	}
	for _, removed := range result.Removed {
		fmt.Fprintf(deps.Stderr, "  removed %s: %s\n", removed.Property, removed.Message)
	}

	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, result.HTML)
}

func overallScore(result *schemamark.SchemaGenerationResult) int {
	if result.Score == nil {
		return 0
	}
	return result.Score.OverallScore
}
