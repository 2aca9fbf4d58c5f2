package main

import (
	"fmt"

	"github.com/schemamark/schemamark"
)

// Run executes the refine command.
func (c *RefineCmd) Run(deps *Dependencies) error {
	outcome, err := deps.Pipeline.Refine(deps.Ctx, c.ID, c.Instructions)
	if err != nil {
		if schemamark.ErrorCode(err) == schemamark.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: record %q not found. Use 'schemamark list' to see records.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", schemamark.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Refined %s (%d change(s))\n", outcome.Record.ID, len(outcome.Changes))
	for _, change := range outcome.Changes {
		fmt.Fprintf(deps.Stdout, "  - %s\n", change)
	}

	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, outcome.HTML)
	return nil
}
