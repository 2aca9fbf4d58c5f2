package main

import (
	"fmt"

	"github.com/schemamark/schemamark"
	"github.com/schemamark/schemamark/fs"
	"github.com/schemamark/schemamark/jsonld"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	rec, err := deps.Generations.FindGenerationByID(deps.Ctx, c.ID)
	if err != nil {
		if schemamark.ErrorCode(err) == schemamark.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: record %q not found. Use 'schemamark list' to see records.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", schemamark.ErrorMessage(err))
		}
		return err
	}

	if c.Out != "" {
		path, err := fs.NewSnippetWriter(c.Out).WriteSnippet(rec)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", schemamark.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
		return nil
	}

	if c.HTML {
		if len(rec.Schemas) == 0 {
			fmt.Fprintf(deps.Stderr, "error: record %q has no schemas\n", c.ID)
			return schemamark.Errorf(schemamark.ENOSCHEMAS, "record %q has no schemas", c.ID)
		}
		html, err := jsonld.Embed(rec.Schemas)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", schemamark.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, html)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "ID:       %s\n", rec.ID)
	fmt.Fprintf(deps.Stdout, "URL:      %s\n", rec.URL)
	fmt.Fprintf(deps.Stdout, "User:     %s\n", rec.UserID)
	fmt.Fprintf(deps.Stdout, "Status:   %s\n", rec.Status)
	fmt.Fprintf(deps.Stdout, "Created:  %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(deps.Stdout, "Credits:  %d\n", rec.CreditsUsed)
	fmt.Fprintf(deps.Stdout, "Duration: %dms\n", rec.ProcessingMS)

	if rec.Score != nil {
		fmt.Fprintf(deps.Stdout, "Score:    %d/100 (required %d, recommended %d, advanced %d, content %d)\n",
			rec.Score.OverallScore,
			rec.Score.Breakdown.RequiredProperties,
			rec.Score.Breakdown.RecommendedProperties,
			rec.Score.Breakdown.AdvancedAEOFeatures,
			rec.Score.Breakdown.ContentQuality)
	}

	for _, schema := range rec.Schemas {
		fmt.Fprintf(deps.Stdout, "Schema:   %v\n", schema["@type"])
	}

	if rec.Failure != nil {
		fmt.Fprintf(deps.Stdout, "Failure:  %s (stage %s, %s)\n",
			rec.Failure.Message, rec.Failure.Stage, rec.Failure.Kind)
	}

	return nil
}
