package ports

import (
	"context"
	"time"

	"fulfillment-service/internal/features/shipments/domain"
	trackingdomain "fulfillment-service/internal/features/tracking/domain"
)

// UpdateStatusParams carries the caller-provided fields for a status change.
type UpdateStatusParams struct {
	// Status is the requested lifecycle status (free text, validated by the service).
	Status string
	// Note optionally overrides the default audit note.
	Note string
	// Carrier and TrackingNumber update the shipment's logistics fields when set.
	Carrier        string
	TrackingNumber string
}

// ShipmentService defines the primary port for fulfillment operations. Write
// operations are scoped to the caller's business id; FindByOrderOrTracking is
// deliberately unscoped for public tracking lookups.
type ShipmentService interface {
	Create(ctx context.Context, params domain.CreateShipmentParams) (*domain.Shipment, error)
	UpdateStatus(ctx context.Context, businessID, shipmentID string, params UpdateStatusParams) (*domain.Shipment, error)
	RefreshLiveTracking(ctx context.Context, businessID, shipmentID string) (*domain.Shipment, error)
	FindByOrderOrTracking(ctx context.Context, needle string) (*domain.Shipment, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*domain.Shipment, error)
	ListByProduct(ctx context.Context, businessID, productID string) ([]*domain.Shipment, error)
	Delete(ctx context.Context, businessID, shipmentID string) error
}

// ShipmentRepository defines the secondary port for shipment persistence.
// Lookups return (nil, nil) when no shipment matches.
type ShipmentRepository interface {
	Save(ctx context.Context, shipment *domain.Shipment) error
	Get(ctx context.Context, shipmentID string) (*domain.Shipment, error)
	Delete(ctx context.Context, shipment *domain.Shipment) error
	ListByBusiness(ctx context.Context, businessID string) ([]*domain.Shipment, error)
	FindByOrderOrTracking(ctx context.Context, needle string) (*domain.Shipment, error)

	// ClaimInventory atomically claims the one-time inventory adjustment for a
	// shipment. It returns true for exactly one caller across all concurrent
	// and repeated attempts.
	ClaimInventory(ctx context.Context, shipmentID string) (bool, error)
}

// ProductInventory defines the secondary port for the product counters
// mutated on first delivery.
type ProductInventory interface {
	// RecordDelivery applies the delivery adjustment atomically:
	// stock -= quantity, sold_count += quantity, sold_orders += 1.
	RecordDelivery(ctx context.Context, productID string, quantity int) error
}

// LiveTrackingFetcher defines the seam to the carrier-adapter layer. A nil
// snapshot means no live data is available; fetch failures never surface here.
type LiveTrackingFetcher interface {
	FetchLiveTracking(ctx context.Context, carrier, trackingNumber string) *trackingdomain.TrackingSnapshot
}

// MirrorUpdate is the subset of shipment state propagated onto the parent
// order's fulfillment subdocument.
type MirrorUpdate struct {
	Status         string
	Carrier        string
	TrackingNumber string
	Note           string
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	OccurredAt     time.Time
}

// OrderMirror defines the secondary port for keeping the parent order's
// fulfillment view in sync. Implementations must treat a missing order as a
// silent no-op and never create orders.
type OrderMirror interface {
	SyncShipment(ctx context.Context, orderID string, update MirrorUpdate) error
}
