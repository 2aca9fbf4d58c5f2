package main

import (
	"fmt"

	"github.com/schemamark/schemamark"
)

// Run executes the "credits balance" command.
func (c *BalanceCmd) Run(deps *Dependencies) error {
	balance, err := deps.Credits.Balance(deps.Ctx, c.User)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", schemamark.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s: %d credit(s)\n", c.User, balance)
	return nil
}

// Run executes the "credits grant" command.
func (c *GrantCmd) Run(deps *Dependencies) error {
	if c.Amount <= 0 {
		fmt.Fprintf(deps.Stderr, "error: amount must be positive\n")
		return schemamark.Errorf(schemamark.EINVALID, "amount must be positive")
	}

	if err := deps.Credits.Grant(deps.Ctx, c.User, c.Amount, "manual grant"); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", schemamark.ErrorMessage(err))
		return err
	}

	balance, err := deps.Credits.Balance(deps.Ctx, c.User)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", schemamark.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Granted %d credit(s) to %s (balance %d)\n", c.Amount, c.User, balance)
	return nil
}
