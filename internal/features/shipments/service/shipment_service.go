package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment-service/internal/core/logger"
	"fulfillment-service/internal/features/shipments/domain"
	"fulfillment-service/internal/features/shipments/ports"
	trackingdomain "fulfillment-service/internal/features/tracking/domain"

	"go.uber.org/zap"
)

var (
	// ErrShipmentNotFound is returned when no shipment matches the lookup.
	ErrShipmentNotFound = errors.New("shipment not found")
	// ErrForbidden is returned when the caller's business does not own the shipment.
	ErrForbidden = errors.New("shipment belongs to another business")
)

// ShipmentServiceImpl implements ports.ShipmentService. It owns the shipment
// lifecycle: transitions, the append-only history, the one-time inventory
// adjustment on first delivery, and mirroring onto the parent order.
type ShipmentServiceImpl struct {
	repo      ports.ShipmentRepository
	inventory ports.ProductInventory
	fetcher   ports.LiveTrackingFetcher
	mirror    ports.OrderMirror
	logger    *zap.Logger
}

// NewShipmentService creates a new ShipmentServiceImpl.
func NewShipmentService(
	repo ports.ShipmentRepository,
	inventory ports.ProductInventory,
	fetcher ports.LiveTrackingFetcher,
	mirror ports.OrderMirror,
) *ShipmentServiceImpl {
	return &ShipmentServiceImpl{
		repo:      repo,
		inventory: inventory,
		fetcher:   fetcher,
		mirror:    mirror,
		logger:    logger.Get(),
	}
}

// Create persists a new shipment and mirrors its initial state onto the
// parent order.
func (s *ShipmentServiceImpl) Create(ctx context.Context, params domain.CreateShipmentParams) (*domain.Shipment, error) {
	shipment := domain.NewShipment(params)

	if err := s.repo.Save(ctx, shipment); err != nil {
		return nil, fmt.Errorf("service: failed to save shipment: %w", err)
	}

	s.syncMirror(ctx, shipment, "Shipment created")

	return shipment, nil
}

// UpdateStatus applies a lifecycle transition. An unrecognized requested
// status keeps the current status but is still recorded in the history for
// audit. Live carrier data, when obtainable, only refreshes the cached
// live-tracking fields and never the status of record. The inventory
// adjustment fires exactly once, on the first delivery of a product-linked
// shipment, guarded by an atomic claim.
func (s *ShipmentServiceImpl) UpdateStatus(ctx context.Context, businessID, shipmentID string, params ports.UpdateStatusParams) (*domain.Shipment, error) {
	shipment, err := s.load(ctx, businessID, shipmentID)
	if err != nil {
		return nil, err
	}

	if params.Carrier != "" {
		shipment.Carrier = params.Carrier
	}
	if params.TrackingNumber != "" {
		shipment.TrackingNumber = params.TrackingNumber
	}

	requested, recognized := domain.ParseStatus(params.Status)

	// Live enrichment happens before the claim/persist steps so a slow
	// carrier never sits inside the critical section.
	s.enrich(ctx, shipment)

	note := params.Note
	if !recognized {
		if note == "" {
			note = fmt.Sprintf("Ignored unrecognized status %q", params.Status)
		}
		shipment.AppendHistory(shipment.Status, note)
	} else {
		if note == "" {
			note = "Status changed to " + string(requested)
		}
		shipment.Status = requested
		shipment.AppendHistory(requested, note)

		now := time.Now().UTC()
		if requested == domain.StatusInTransit && shipment.ShippedAt == nil {
			shipment.ShippedAt = &now
		}
		if requested == domain.StatusDelivered && shipment.DeliveredAt == nil {
			shipment.DeliveredAt = &now
		}

		if requested == domain.StatusDelivered && !shipment.InventoryCounted && shipment.ProductID != "" {
			if err := s.applyInventory(ctx, shipment); err != nil {
				return nil, err
			}
		}
	}

	shipment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, shipment); err != nil {
		return nil, fmt.Errorf("service: failed to save shipment: %w", err)
	}

	s.syncMirror(ctx, shipment, note)

	return shipment, nil
}

// RefreshLiveTracking re-runs the carrier lookup and persists the refreshed
// cache. The shipment's status and history are left untouched.
func (s *ShipmentServiceImpl) RefreshLiveTracking(ctx context.Context, businessID, shipmentID string) (*domain.Shipment, error) {
	shipment, err := s.load(ctx, businessID, shipmentID)
	if err != nil {
		return nil, err
	}

	s.enrich(ctx, shipment)
	shipment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, shipment); err != nil {
		return nil, fmt.Errorf("service: failed to save shipment: %w", err)
	}

	return shipment, nil
}

// FindByOrderOrTracking is the public tracking lookup: it matches an opaque
// needle against order references and tracking numbers without business
// scoping.
func (s *ShipmentServiceImpl) FindByOrderOrTracking(ctx context.Context, needle string) (*domain.Shipment, error) {
	if needle == "" {
		return nil, ErrShipmentNotFound
	}

	shipment, err := s.repo.FindByOrderOrTracking(ctx, needle)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search shipments: %w", err)
	}
	if shipment == nil {
		return nil, ErrShipmentNotFound
	}

	return shipment, nil
}

// ListByBusiness returns all shipments owned by the caller's business.
func (s *ShipmentServiceImpl) ListByBusiness(ctx context.Context, businessID string) ([]*domain.Shipment, error) {
	shipments, err := s.repo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list shipments: %w", err)
	}
	return shipments, nil
}

// ListByProduct returns the caller's shipments for one product.
func (s *ShipmentServiceImpl) ListByProduct(ctx context.Context, businessID, productID string) ([]*domain.Shipment, error) {
	shipments, err := s.repo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list shipments: %w", err)
	}

	filtered := make([]*domain.Shipment, 0, len(shipments))
	for _, shipment := range shipments {
		if shipment.ProductID == productID {
			filtered = append(filtered, shipment)
		}
	}

	return filtered, nil
}

// Delete hard-deletes an owned shipment. An inventory adjustment already
// applied for it is deliberately not reversed.
func (s *ShipmentServiceImpl) Delete(ctx context.Context, businessID, shipmentID string) error {
	shipment, err := s.load(ctx, businessID, shipmentID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, shipment); err != nil {
		return fmt.Errorf("service: failed to delete shipment: %w", err)
	}

	return nil
}

// load fetches a shipment and enforces ownership.
func (s *ShipmentServiceImpl) load(ctx context.Context, businessID, shipmentID string) (*domain.Shipment, error) {
	shipment, err := s.repo.Get(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get shipment: %w", err)
	}
	if shipment == nil {
		return nil, ErrShipmentNotFound
	}
	if shipment.BusinessID != businessID {
		return nil, ErrForbidden
	}
	return shipment, nil
}

// enrich refreshes the shipment's live-tracking cache when a lookup is
// possible. Fetch failures leave the existing cache in place.
func (s *ShipmentServiceImpl) enrich(ctx context.Context, shipment *domain.Shipment) {
	if shipment.Carrier == "" || shipment.Carrier == trackingdomain.CarrierOther || shipment.TrackingNumber == "" {
		return
	}

	snapshot := s.fetcher.FetchLiveTracking(ctx, shipment.Carrier, shipment.TrackingNumber)
	if snapshot == nil {
		return
	}

	shipment.Live = &domain.LiveTracking{
		Status:            snapshot.Status,
		Events:            snapshot.Events,
		EstimatedDelivery: snapshot.EstimatedDelivery,
		RefreshedAt:       time.Now().UTC(),
	}
}

// applyInventory performs the exactly-once delivery adjustment. The claim is
// atomic: of any number of concurrent delivery transitions for one shipment,
// exactly one wins the claim and applies the product counters. Losers only
// record that the adjustment is accounted for.
func (s *ShipmentServiceImpl) applyInventory(ctx context.Context, shipment *domain.Shipment) error {
	claimed, err := s.repo.ClaimInventory(ctx, shipment.ID)
	if err != nil {
		return fmt.Errorf("service: failed to claim inventory adjustment: %w", err)
	}

	if claimed {
		if err := s.inventory.RecordDelivery(ctx, shipment.ProductID, shipment.Quantity); err != nil {
			return fmt.Errorf("service: failed to adjust product inventory: %w", err)
		}
	}

	shipment.InventoryCounted = true
	return nil
}

// syncMirror propagates the shipment's state onto the parent order. The
// mirror is a read optimization: failures are logged, never fatal, and a
// missing order is a silent no-op inside the mirror itself.
func (s *ShipmentServiceImpl) syncMirror(ctx context.Context, shipment *domain.Shipment, note string) {
	if shipment.OrderID == "" {
		return
	}

	update := ports.MirrorUpdate{
		Status:         string(shipment.Status),
		Carrier:        shipment.Carrier,
		TrackingNumber: shipment.TrackingNumber,
		Note:           note,
		ShippedAt:      shipment.ShippedAt,
		DeliveredAt:    shipment.DeliveredAt,
		OccurredAt:     time.Now().UTC(),
	}

	if err := s.mirror.SyncShipment(ctx, shipment.OrderID, update); err != nil {
		s.logger.Warn("Failed to mirror shipment onto order",
			zap.String("shipment_id", shipment.ID),
			zap.String("order_id", shipment.OrderID),
			zap.Error(err),
		)
	}
}
