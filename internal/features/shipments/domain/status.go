package domain

import "strings"

// ShipmentStatus represents the lifecycle state of a shipment. It is the
// status of record; carrier-reported live statuses never overwrite it.
type ShipmentStatus string

const (
	// StatusPending indicates the shipment has been registered but not prepared.
	StatusPending ShipmentStatus = "Pending"
	// StatusProcessing indicates the shipment is being prepared by the seller.
	StatusProcessing ShipmentStatus = "Processing"
	// StatusInTransit indicates the shipment has been handed to the carrier.
	StatusInTransit ShipmentStatus = "In Transit"
	// StatusDelivered indicates the shipment has reached the buyer.
	StatusDelivered ShipmentStatus = "Delivered"
	// StatusCanceled and StatusCancelled both indicate an aborted shipment.
	// Historical data holds both spellings, so both stay first-class values.
	StatusCanceled  ShipmentStatus = "Canceled"
	StatusCancelled ShipmentStatus = "Cancelled"
)

// allowedStatuses maps lowercased input to its canonical spelling. The two
// cancel spellings intentionally map to themselves, not to each other.
var allowedStatuses = map[string]ShipmentStatus{
	"pending":    StatusPending,
	"processing": StatusProcessing,
	"in transit": StatusInTransit,
	"delivered":  StatusDelivered,
	"canceled":   StatusCanceled,
	"cancelled":  StatusCancelled,
}

// ParseStatus validates a requested status string case-insensitively.
// The boolean reports whether the input named a recognized status.
func ParseStatus(raw string) (ShipmentStatus, bool) {
	status, ok := allowedStatuses[strings.ToLower(strings.TrimSpace(raw))]
	return status, ok
}

// Terminal reports whether no further lifecycle transitions are expected.
func (s ShipmentStatus) Terminal() bool {
	switch s {
	case StatusDelivered, StatusCanceled, StatusCancelled:
		return true
	}
	return false
}
