package payment

import (
	"context"
	"fmt"

	"github.com/georgemunganga/storefront-backend/internal/modules/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service defines the checkout payment flow.
type Service interface {
	// Token fetches a client authorization token from the gateway.
	Token(ctx context.Context) (*TokenResponse, error)

	// Process settles the cart with the gateway and, only on success,
	// persists the order for the buyer.
	Process(ctx context.Context, buyer uuid.UUID, req ProcessRequest) (*order.Order, error)
}

// CartItem is one product in the submitted cart.
type CartItem struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name,omitempty"`
	Price float64 `json:"price"`
}

// ProcessRequest is the checkout payload: the cart plus the single-use
// payment nonce the client obtained from the gateway.
type ProcessRequest struct {
	Cart  []CartItem `json:"cart"`
	Nonce string     `json:"nonce"`
}

type service struct {
	gateway Gateway
	orders  order.Repository
}

func NewService(gateway Gateway, orders order.Repository) Service {
	return &service{gateway: gateway, orders: orders}
}

func (s *service) Token(ctx context.Context) (*TokenResponse, error) {
	return s.gateway.ClientToken(ctx)
}

func (s *service) Process(ctx context.Context, buyer uuid.UUID, req ProcessRequest) (*order.Order, error) {
	productIDs := make([]uuid.UUID, len(req.Cart))
	total := decimal.Zero
	for i, item := range req.Cart {
		id, err := uuid.Parse(item.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid cart product id %q: %w", item.ID, err)
		}
		productIDs[i] = id
		total = total.Add(decimal.NewFromFloat(item.Price))
	}

	result, err := s.gateway.Sale(ctx, total.String(), req.Nonce)
	if err != nil {
		return nil, err
	}

	// The order is written only after the gateway confirms the charge.
	o := &order.Order{
		ID:       uuid.New(),
		Products: productIDs,
		Payment:  result.Raw,
		Buyer:    buyer,
		Status:   order.StatusNotProcessed,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("saving order: %w", err)
	}
	return o, nil
}
