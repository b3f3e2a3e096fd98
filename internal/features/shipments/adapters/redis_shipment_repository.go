package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"fulfillment-service/internal/core/store"
	"fulfillment-service/internal/features/shipments/domain"
)

// Key layout for the shipment documents and their secondary indexes.
const (
	shipmentKeyPrefix      = "shipment:"
	shipmentClaimKeyPrefix = "shipment:claim:"
	businessIndexPrefix    = "shipments:business:"
	orderIndexPrefix       = "shipments:order:"
	trackingIndexPrefix    = "shipments:tracking:"
)

// RedisShipmentRepository implements ports.ShipmentRepository on the document
// store: one JSON document per shipment plus set-based secondary indexes for
// business, order reference and tracking number.
type RedisShipmentRepository struct {
	store store.Store
}

// NewRedisShipmentRepository creates a new RedisShipmentRepository.
func NewRedisShipmentRepository(s store.Store) *RedisShipmentRepository {
	return &RedisShipmentRepository{store: s}
}

// Save persists the shipment document and refreshes its indexes.
func (r *RedisShipmentRepository) Save(ctx context.Context, shipment *domain.Shipment) error {
	data, err := json.Marshal(shipment)
	if err != nil {
		return fmt.Errorf("failed to marshal shipment: %w", err)
	}

	if err := r.store.Set(ctx, shipmentKeyPrefix+shipment.ID, data, 0); err != nil {
		return fmt.Errorf("failed to save shipment: %w", err)
	}

	if err := r.store.SAdd(ctx, businessIndexPrefix+shipment.BusinessID, shipment.ID); err != nil {
		return fmt.Errorf("failed to index shipment by business: %w", err)
	}

	if shipment.OrderID != "" {
		if err := r.store.SAdd(ctx, orderIndexPrefix+shipment.OrderID, shipment.ID); err != nil {
			return fmt.Errorf("failed to index shipment by order: %w", err)
		}
	}

	if shipment.TrackingNumber != "" {
		if err := r.store.Set(ctx, trackingIndexPrefix+shipment.TrackingNumber, []byte(shipment.ID), 0); err != nil {
			return fmt.Errorf("failed to index shipment by tracking number: %w", err)
		}
	}

	return nil
}

// Get loads a shipment by id. Returns (nil, nil) when absent.
func (r *RedisShipmentRepository) Get(ctx context.Context, shipmentID string) (*domain.Shipment, error) {
	data, err := r.store.Get(ctx, shipmentKeyPrefix+shipmentID)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}

	var shipment domain.Shipment
	if err := json.Unmarshal(data, &shipment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipment: %w", err)
	}

	return &shipment, nil
}

// Delete removes the shipment document and its index entries. The claim key
// is left in place so a deleted shipment can never re-trigger the inventory
// adjustment through id reuse.
func (r *RedisShipmentRepository) Delete(ctx context.Context, shipment *domain.Shipment) error {
	keys := []string{shipmentKeyPrefix + shipment.ID}
	if shipment.TrackingNumber != "" {
		keys = append(keys, trackingIndexPrefix+shipment.TrackingNumber)
	}

	if err := r.store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("failed to delete shipment: %w", err)
	}

	if err := r.store.SRem(ctx, businessIndexPrefix+shipment.BusinessID, shipment.ID); err != nil {
		return fmt.Errorf("failed to unindex shipment by business: %w", err)
	}

	if shipment.OrderID != "" {
		if err := r.store.SRem(ctx, orderIndexPrefix+shipment.OrderID, shipment.ID); err != nil {
			return fmt.Errorf("failed to unindex shipment by order: %w", err)
		}
	}

	return nil
}

// ListByBusiness returns all shipments owned by a business, newest first.
func (r *RedisShipmentRepository) ListByBusiness(ctx context.Context, businessID string) ([]*domain.Shipment, error) {
	ids, err := r.store.SMembers(ctx, businessIndexPrefix+businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}

	shipments, err := r.loadAll(ctx, ids)
	if err != nil {
		return nil, err
	}

	sort.Slice(shipments, func(i, j int) bool {
		return shipments[i].CreatedAt.After(shipments[j].CreatedAt)
	})

	return shipments, nil
}

// FindByOrderOrTracking matches the needle against the order-reference index
// first, then the tracking-number index. Returns (nil, nil) when nothing
// matches. When several shipments share an order reference the earliest
// created one wins.
func (r *RedisShipmentRepository) FindByOrderOrTracking(ctx context.Context, needle string) (*domain.Shipment, error) {
	ids, err := r.store.SMembers(ctx, orderIndexPrefix+needle)
	if err != nil {
		return nil, fmt.Errorf("failed to search order index: %w", err)
	}

	if len(ids) > 0 {
		shipments, err := r.loadAll(ctx, ids)
		if err != nil {
			return nil, err
		}
		if len(shipments) > 0 {
			sort.Slice(shipments, func(i, j int) bool {
				return shipments[i].CreatedAt.Before(shipments[j].CreatedAt)
			})
			return shipments[0], nil
		}
	}

	idData, err := r.store.Get(ctx, trackingIndexPrefix+needle)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to search tracking index: %w", err)
	}

	return r.Get(ctx, string(idData))
}

// ClaimInventory atomically claims the one-time inventory adjustment via
// SETNX. Exactly one caller observes true for a given shipment id, ever.
func (r *RedisShipmentRepository) ClaimInventory(ctx context.Context, shipmentID string) (bool, error) {
	claimed, err := r.store.SetNX(ctx, shipmentClaimKeyPrefix+shipmentID, []byte("1"))
	if err != nil {
		return false, fmt.Errorf("failed to claim inventory adjustment: %w", err)
	}
	return claimed, nil
}

// loadAll fetches the given shipment ids, skipping ids whose document has
// been removed since the index was read.
func (r *RedisShipmentRepository) loadAll(ctx context.Context, ids []string) ([]*domain.Shipment, error) {
	shipments := make([]*domain.Shipment, 0, len(ids))
	for _, id := range ids {
		shipment, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if shipment != nil {
			shipments = append(shipments, shipment)
		}
	}
	return shipments, nil
}
