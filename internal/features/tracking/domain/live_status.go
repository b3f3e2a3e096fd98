package domain

import "strings"

// LiveStatus represents the canonical carrier-reported status of a parcel.
// It is advisory metadata cached on a shipment and never overrides the
// shipment's own lifecycle status.
type LiveStatus string

const (
	// LiveStatusUnknown is used when the carrier status cannot be classified.
	LiveStatusUnknown LiveStatus = "UNKNOWN"
	// LiveStatusProcessing indicates the parcel is still being prepared.
	LiveStatusProcessing LiveStatus = "PROCESSING"
	// LiveStatusPickedUp indicates the carrier has collected the parcel.
	LiveStatusPickedUp LiveStatus = "PICKED_UP"
	// LiveStatusInTransit indicates the parcel is moving through the network.
	LiveStatusInTransit LiveStatus = "IN_TRANSIT"
	// LiveStatusOutForDelivery indicates the parcel is on a delivery vehicle.
	LiveStatusOutForDelivery LiveStatus = "OUT_FOR_DELIVERY"
	// LiveStatusDelayed indicates an exception or delay reported by the carrier.
	LiveStatusDelayed LiveStatus = "DELAYED"
	// LiveStatusDelivered indicates the parcel has reached the recipient.
	LiveStatusDelivered LiveStatus = "DELIVERED"
)

// statusRules is the ordered keyword table used to classify free-text carrier
// statuses. Earlier rules win; "out for delivery" must be checked before
// "delivery" would ever match anything.
var statusRules = []struct {
	keywords []string
	status   LiveStatus
}{
	{[]string{"delivered", "completed"}, LiveStatusDelivered},
	{[]string{"out for delivery", "on vehicle"}, LiveStatusOutForDelivery},
	{[]string{"in transit", "in transportation"}, LiveStatusInTransit},
	{[]string{"picked up", "collected"}, LiveStatusPickedUp},
	{[]string{"exception", "delay"}, LiveStatusDelayed},
	{[]string{"pending", "processing"}, LiveStatusProcessing},
}

// NormalizeCarrierStatus maps an arbitrary carrier-reported status string to a
// LiveStatus by case-insensitive substring match. The mapping is lossy and
// best-effort: unclassifiable or empty input yields LiveStatusUnknown, never
// an error.
func NormalizeCarrierStatus(raw string) LiveStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return LiveStatusUnknown
	}

	for _, rule := range statusRules {
		for _, kw := range rule.keywords {
			if strings.Contains(s, kw) {
				return rule.status
			}
		}
	}

	return LiveStatusUnknown
}
