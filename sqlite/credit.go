package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/schemamark/schemamark"
)

// Compile-time interface verification.
var _ schemamark.CreditService = (*CreditService)(nil)

// CreditService implements schemamark.CreditService using SQLite. Balance
// changes run inside a transaction with a conditional update so concurrent
// consumers can never overdraw an account.
type CreditService struct {
	db *DB
}

// NewCreditService creates a new CreditService.
func NewCreditService(db *DB) *CreditService {
	return &CreditService{db: db}
}

// Balance returns the user's current credit balance.
func (s *CreditService) Balance(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, schemamark.Errorf(schemamark.EINVALID, "user ID required")
	}

	var balance int
	err := s.db.QueryRowContext(ctx, "SELECT balance FROM credits WHERE user_id = ?", userID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Consume atomically decrements the user's balance and appends a ledger
// entry. Returns false without error when funds are insufficient or the
// write lock could not be obtained within the busy timeout.
func (s *CreditService) Consume(ctx context.Context, userID string, amount int, description string) (bool, error) {
	if userID == "" {
		return false, schemamark.Errorf(schemamark.EINVALID, "user ID required")
	}
	if amount <= 0 {
		return false, schemamark.Errorf(schemamark.EINVALID, "amount must be positive")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		if isLockError(err) {
			return false, nil
		}
		return false, err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	// The balance guard in the WHERE clause is what makes consumption
	// atomic: two concurrent consumers both pass a balance check done
	// with a prior SELECT, but only one can win this conditional update.
	result, err := tx.ExecContext(ctx, `
		UPDATE credits
		SET balance = balance - ?, updated_at = ?
		WHERE user_id = ? AND balance >= ?
	`, amount, now, userID, amount)
	if err != nil {
		if isLockError(err) {
			return false, nil
		}
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO credit_ledger (id, user_id, delta, description, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), userID, -amount, description, now); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		if isLockError(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// Refund credits the user's balance and appends a ledger entry.
func (s *CreditService) Refund(ctx context.Context, userID string, amount int, description string) error {
	return s.credit(ctx, userID, amount, description)
}

// Grant adds credits to the user's balance (top-up).
func (s *CreditService) Grant(ctx context.Context, userID string, amount int, description string) error {
	return s.credit(ctx, userID, amount, description)
}

func (s *CreditService) credit(ctx context.Context, userID string, amount int, description string) error {
	if userID == "" {
		return schemamark.Errorf(schemamark.EINVALID, "user ID required")
	}
	if amount <= 0 {
		return schemamark.Errorf(schemamark.EINVALID, "amount must be positive")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO credits (user_id, balance, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			balance = balance + excluded.balance,
			updated_at = excluded.updated_at
	`, userID, amount, now); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO credit_ledger (id, user_id, delta, description, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), userID, amount, description, now); err != nil {
		return err
	}

	return tx.Commit()
}
