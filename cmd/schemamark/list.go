package main

import (
	"fmt"

	"github.com/schemamark/schemamark"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := schemamark.GenerationFilter{Limit: c.Limit}
	if c.User != "" {
		filter.UserID = &c.User
	}
	if c.Status != "" {
		status := schemamark.GenerationStatus(c.Status)
		switch status {
		case schemamark.StatusProcessing, schemamark.StatusSuccess, schemamark.StatusFailed:
		default:
			fmt.Fprintf(deps.Stderr, "error: unknown status %q\n", c.Status)
			return schemamark.Errorf(schemamark.EINVALID, "unknown status %q", c.Status)
		}
		filter.Status = &status
	}

	records, err := deps.Generations.FindGenerations(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", schemamark.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No generations found. Use 'schemamark generate <url>' to create one.")
		return nil
	}

	for _, rec := range records {
		score := "-"
		if rec.Score != nil {
			score = fmt.Sprintf("%d", rec.Score.OverallScore)
		}
		fmt.Fprintf(deps.Stdout, "%s  %-10s  %3s  %s\n", rec.ID, rec.Status, score, rec.URL)
	}

	return nil
}
