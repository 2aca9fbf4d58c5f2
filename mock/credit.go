package mock

import (
	"context"

	"github.com/schemamark/schemamark"
)

var _ schemamark.CreditService = (*CreditService)(nil)

// CreditService is a mock implementation of schemamark.CreditService.
type CreditService struct {
	BalanceFn func(ctx context.Context, userID string) (int, error)
	ConsumeFn func(ctx context.Context, userID string, amount int, description string) (bool, error)
	RefundFn  func(ctx context.Context, userID string, amount int, description string) error
	GrantFn   func(ctx context.Context, userID string, amount int, description string) error
}

func (s *CreditService) Balance(ctx context.Context, userID string) (int, error) {
	return s.BalanceFn(ctx, userID)
}

func (s *CreditService) Consume(ctx context.Context, userID string, amount int, description string) (bool, error) {
	return s.ConsumeFn(ctx, userID, amount, description)
}

func (s *CreditService) Refund(ctx context.Context, userID string, amount int, description string) error {
	return s.RefundFn(ctx, userID, amount, description)
}

func (s *CreditService) Grant(ctx context.Context, userID string, amount int, description string) error {
	return s.GrantFn(ctx, userID, amount, description)
}
