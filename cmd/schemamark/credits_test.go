package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/schemamark/schemamark"
	main "github.com/schemamark/schemamark/cmd/schemamark"
	"github.com/schemamark/schemamark/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceCmd_Run(t *testing.T) {
	t.Parallel()

	credits := &mock.CreditService{
		BalanceFn: func(_ context.Context, userID string) (int, error) {
			assert.Equal(t, "acct-1", userID)
			return 7, nil
		},
	}

	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  &bytes.Buffer{},
		Credits: credits,
	}

	cmd := &main.BalanceCmd{User: "acct-1"}
	require.NoError(t, cmd.Run(deps))
	assert.Contains(t, stdout.String(), "acct-1: 7 credit(s)")
}

func TestGrantCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("grants and prints new balance", func(t *testing.T) {
		t.Parallel()

		granted := 0
		credits := &mock.CreditService{
			GrantFn: func(_ context.Context, userID string, amount int, description string) error {
				assert.Equal(t, "local", userID)
				assert.Equal(t, "manual grant", description)
				granted = amount
				return nil
			},
			BalanceFn: func(_ context.Context, userID string) (int, error) {
				return granted, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Credits: credits,
		}

		cmd := &main.GrantCmd{Amount: 10, User: "local"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, 10, granted)
		assert.Contains(t, stdout.String(), "Granted 10 credit(s) to local (balance 10)")
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		}

		cmd := &main.GrantCmd{Amount: 0, User: "local"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, schemamark.EINVALID, schemamark.ErrorCode(err))
	})
}
