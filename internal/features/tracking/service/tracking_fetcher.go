package service

import (
	"context"

	"fulfillment-service/internal/core/logger"
	"fulfillment-service/internal/features/tracking/domain"
	"fulfillment-service/internal/features/tracking/ports"

	"go.uber.org/zap"
)

// TrackingFetcher resolves a carrier code to its adapter and runs a live
// lookup with failure containment: the caller always receives a snapshot or
// nil, never an error. It owns no state beyond the registry built at
// construction time.
type TrackingFetcher struct {
	adapters map[string]ports.CarrierAdapter
	logger   *zap.Logger
}

// NewTrackingFetcher creates a TrackingFetcher with a read-only registry built
// once from the given adapters.
func NewTrackingFetcher(adapters []ports.CarrierAdapter) *TrackingFetcher {
	registry := make(map[string]ports.CarrierAdapter, len(adapters))
	for _, a := range adapters {
		registry[a.Carrier()] = a
	}

	return &TrackingFetcher{
		adapters: registry,
		logger:   logger.Get(),
	}
}

// FetchLiveTracking performs a live-tracking lookup for the given carrier and
// tracking number. Returns nil when either argument is empty, the carrier has
// no registered adapter, or the adapter call fails; carrier failures are
// logged and absorbed, never propagated.
func (f *TrackingFetcher) FetchLiveTracking(ctx context.Context, carrier, trackingNumber string) *domain.TrackingSnapshot {
	if carrier == "" || trackingNumber == "" {
		return nil
	}

	adapter, ok := f.adapters[carrier]
	if !ok {
		f.logger.Debug("No adapter registered for carrier",
			zap.String("carrier", carrier),
		)
		return nil
	}

	snapshot, err := adapter.Track(ctx, trackingNumber)
	if err != nil {
		f.logger.Warn("Live tracking lookup failed",
			zap.String("carrier", carrier),
			zap.String("tracking_number", trackingNumber),
			zap.Error(err),
		)
		return nil
	}

	return snapshot
}
