package adapters

import (
	"context"
	"fmt"

	"fulfillment-service/internal/core/store"
)

const productKeyPrefix = "product:"

// Product counter fields adjusted on first delivery.
const (
	productFieldStock      = "stock"
	productFieldSoldCount  = "sold_count"
	productFieldSoldOrders = "sold_orders"
)

// RedisProductInventory implements ports.ProductInventory against the product
// counter hashes. The product documents themselves are owned by the catalog
// subsystem; this adapter only touches the three counters.
type RedisProductInventory struct {
	store store.Store
}

// NewRedisProductInventory creates a new RedisProductInventory.
func NewRedisProductInventory(s store.Store) *RedisProductInventory {
	return &RedisProductInventory{store: s}
}

// RecordDelivery applies the delivery adjustment as one transactional
// increment: stock -= quantity, sold_count += quantity, sold_orders += 1.
func (r *RedisProductInventory) RecordDelivery(ctx context.Context, productID string, quantity int) error {
	err := r.store.HIncrBy(ctx, productKeyPrefix+productID, map[string]int64{
		productFieldStock:      -int64(quantity),
		productFieldSoldCount:  int64(quantity),
		productFieldSoldOrders: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to record delivery for product %s: %w", productID, err)
	}
	return nil
}
