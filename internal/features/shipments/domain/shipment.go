package domain

import (
	"time"

	trackingdomain "fulfillment-service/internal/features/tracking/domain"

	"github.com/google/uuid"
)

// HistoryEntry is one record in a shipment's append-only audit log. Entries
// are only ever appended, never edited or removed.
type HistoryEntry struct {
	// Status is the shipment status at the time of the entry.
	Status ShipmentStatus `json:"status"`
	// Note is the human-readable description of the change.
	Note string `json:"note"`
	// Timestamp is when the entry was appended.
	Timestamp time.Time `json:"timestamp"`
}

// LiveTracking is the cached carrier-sourced view of a shipment. It is
// advisory metadata; the shipment's own Status stays authoritative.
type LiveTracking struct {
	// Status is the normalized carrier-reported status.
	Status trackingdomain.LiveStatus `json:"status"`
	// Events are the carrier scan events at the time of the last refresh.
	Events []trackingdomain.TrackingEvent `json:"events"`
	// EstimatedDelivery is the carrier's delivery estimate, if reported.
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	// RefreshedAt is when this cache was last populated.
	RefreshedAt time.Time `json:"refreshed_at"`
}

// Shipment represents one tracked parcel for one order line. An order may
// have multiple shipments.
type Shipment struct {
	// ID is the unique identifier for the shipment.
	ID string `json:"shipment_id"`
	// BusinessID is the selling business that owns this shipment.
	BusinessID string `json:"business_id"`
	// BuyerBusinessID is set when the buyer is itself a registered business.
	BuyerBusinessID string `json:"buyer_business_id,omitempty"`
	// OrderID is a free-text order reference, not a hard foreign key; several
	// shipments may share one order id.
	OrderID string `json:"order_id,omitempty"`
	// ProductID links the shipment to the product whose inventory it consumes.
	ProductID string `json:"product_id,omitempty"`

	// Buyer snapshot, denormalized at creation time and never corrected.
	BuyerName    string `json:"buyer_name,omitempty"`
	BuyerEmail   string `json:"buyer_email,omitempty"`
	BuyerAddress string `json:"buyer_address,omitempty"`

	// Carrier is the courier code (see the tracking carrier directory).
	Carrier string `json:"carrier,omitempty"`
	// TrackingNumber is the carrier's reference for the parcel.
	TrackingNumber string `json:"tracking_number,omitempty"`
	// Live is the cached live-tracking view, if any refresh succeeded.
	Live *LiveTracking `json:"live_tracking,omitempty"`

	// Status is the authoritative lifecycle state.
	Status ShipmentStatus `json:"status"`
	// Quantity is the number of units this shipment represents, always >= 1.
	Quantity int `json:"quantity"`
	// InventoryCounted guards the one-time inventory adjustment. It moves
	// false -> true at most once, only on delivery, and is never reset.
	InventoryCounted bool `json:"inventory_counted"`

	// ShippedAt is set on the first transition into In Transit.
	ShippedAt *time.Time `json:"shipped_at,omitempty"`
	// DeliveredAt is set on the first transition into Delivered.
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	// History is the append-only audit log of status changes.
	History []HistoryEntry `json:"history"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateShipmentParams carries the caller-provided fields for a new shipment.
type CreateShipmentParams struct {
	BusinessID      string
	BuyerBusinessID string
	OrderID         string
	ProductID       string
	BuyerName       string
	BuyerEmail      string
	BuyerAddress    string
	Carrier         string
	TrackingNumber  string
	Quantity        int
	InitialStatus   string
}

// NewShipment builds a shipment from caller input. Quantity is clamped to at
// least 1 and an unrecognized or blank initial status falls back to
// Processing rather than failing. The shipment starts with a single
// "Shipment created" history entry.
func NewShipment(p CreateShipmentParams) *Shipment {
	status, ok := ParseStatus(p.InitialStatus)
	if !ok {
		status = StatusProcessing
	}

	quantity := p.Quantity
	if quantity < 1 {
		quantity = 1
	}

	now := time.Now().UTC()

	s := &Shipment{
		ID:              uuid.NewString(),
		BusinessID:      p.BusinessID,
		BuyerBusinessID: p.BuyerBusinessID,
		OrderID:         p.OrderID,
		ProductID:       p.ProductID,
		BuyerName:       p.BuyerName,
		BuyerEmail:      p.BuyerEmail,
		BuyerAddress:    p.BuyerAddress,
		Carrier:         p.Carrier,
		TrackingNumber:  p.TrackingNumber,
		Status:          status,
		Quantity:        quantity,
		History:         make([]HistoryEntry, 0, 1),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	s.AppendHistory(status, "Shipment created")

	return s
}

// AppendHistory adds an audit entry for the given status and note.
func (s *Shipment) AppendHistory(status ShipmentStatus, note string) {
	s.History = append(s.History, HistoryEntry{
		Status:    status,
		Note:      note,
		Timestamp: time.Now().UTC(),
	})
}
