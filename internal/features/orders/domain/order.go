package domain

import "time"

// FulfillmentEvent is one entry in the order's fulfillment history, mirrored
// from the shipment's audit log.
type FulfillmentEvent struct {
	// Status is the shipment status at the time of the event.
	Status string `json:"status"`
	// Note is the human-readable description of the change.
	Note string `json:"note"`
	// Timestamp is when the underlying shipment change happened.
	Timestamp time.Time `json:"timestamp"`
}

// Fulfillment is the order's denormalized view of its shipment. It exists so
// order pages render without a second lookup; the shipment stays the source
// of truth.
type Fulfillment struct {
	// Status mirrors the shipment's authoritative status.
	Status string `json:"status"`
	// Carrier is the courier code on the shipment.
	Carrier string `json:"carrier,omitempty"`
	// CarrierLabel is the courier's display name.
	CarrierLabel string `json:"carrier_label,omitempty"`
	// TrackingNumber is the carrier's parcel reference.
	TrackingNumber string `json:"tracking_number,omitempty"`
	// TrackingURL is the courier's public tracking page for the parcel.
	TrackingURL string `json:"tracking_url,omitempty"`

	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	// History mirrors the shipment's audit notes.
	History []FulfillmentEvent `json:"history"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Order is the marketplace order aggregate. Only the fulfillment view is
// owned here; the rest of the document is written by the ordering subsystem.
type Order struct {
	// ID is the order identifier shared with the ordering subsystem.
	ID string `json:"order_id"`
	// BusinessID is the selling business.
	BusinessID string `json:"business_id,omitempty"`
	// BuyerName is the buyer's display name.
	BuyerName string `json:"buyer_name,omitempty"`
	// Total is the order total in minor currency units.
	Total int64 `json:"total,omitempty"`

	// Fulfillment is the mirrored shipment view, nil until a shipment exists.
	Fulfillment *Fulfillment `json:"fulfillment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
