package ports

import (
	"context"

	"fulfillment-service/internal/features/orders/domain"
)

// OrderRepository defines the secondary port for order persistence. Get
// returns (nil, nil) when the order does not exist.
type OrderRepository interface {
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	Save(ctx context.Context, order *domain.Order) error
}
