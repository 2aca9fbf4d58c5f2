package schemamark

import "context"

// CreditService manages the per-user credit balance. Credits are the one
// piece of truly contended shared state across concurrent requests from the
// same user, so consumption must be atomic against concurrent decrements.
type CreditService interface {
	// Balance returns the user's current credit balance.
	// Unknown users have a balance of zero.
	Balance(ctx context.Context, userID string) (int, error)

	// Consume atomically decrements the user's balance by amount and
	// appends a ledger entry. It returns false, without error, when funds
	// are insufficient or the row lock cannot be obtained in time; callers
	// treat that as a retryable "insufficient credits for now" outcome.
	Consume(ctx context.Context, userID string, amount int, description string) (bool, error)

	// Refund credits the user's balance and appends a ledger entry.
	Refund(ctx context.Context, userID string, amount int, description string) error

	// Grant adds credits to the user's balance (top-up).
	Grant(ctx context.Context, userID string, amount int, description string) error
}
