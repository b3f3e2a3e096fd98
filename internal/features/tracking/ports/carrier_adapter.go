package ports

import (
	"context"

	"fulfillment-service/internal/features/tracking/domain"
)

// CarrierAdapter defines the interface for courier tracking integrations.
// This is a Secondary Port (Driven Port): one implementation per courier.
type CarrierAdapter interface {
	// Track performs one outbound call to the courier's API and returns a
	// normalized snapshot. Any transport or parse failure is returned as an
	// error; the caller decides whether to absorb it.
	Track(ctx context.Context, trackingNumber string) (*domain.TrackingSnapshot, error)
	// Carrier returns the carrier code this adapter serves.
	Carrier() string
}
