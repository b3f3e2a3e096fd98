package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fulfillment-service/internal/core/store"
	"fulfillment-service/internal/features/orders/domain"
)

const orderKeyPrefix = "order:"

// RedisOrderRepository implements ports.OrderRepository on the document store.
// Order documents are shared with the ordering subsystem; this repository
// reads and rewrites whole documents and never deletes them.
type RedisOrderRepository struct {
	store store.Store
}

// NewRedisOrderRepository creates a new RedisOrderRepository.
func NewRedisOrderRepository(s store.Store) *RedisOrderRepository {
	return &RedisOrderRepository{store: s}
}

// Get loads an order by id. Returns (nil, nil) when absent.
func (r *RedisOrderRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	data, err := r.store.Get(ctx, orderKeyPrefix+orderID)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order: %w", err)
	}

	return &order, nil
}

// Save persists the order document.
func (r *RedisOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	if err := r.store.Set(ctx, orderKeyPrefix+order.ID, data, 0); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	return nil
}
