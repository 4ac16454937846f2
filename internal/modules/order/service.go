package order

import (
	"context"

	"github.com/google/uuid"
)

// Service defines order read logic. Order creation belongs to the payment
// flow, which writes through the Repository directly.
type Service interface {
	ListByBuyer(ctx context.Context, buyer uuid.UUID) ([]*Order, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListByBuyer(ctx context.Context, buyer uuid.UUID) ([]*Order, error) {
	return s.repo.ListByBuyer(ctx, buyer)
}
