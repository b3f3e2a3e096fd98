package service

import (
	"context"
	"fmt"
	"time"

	"fulfillment-service/internal/core/logger"
	"fulfillment-service/internal/features/orders/domain"
	orderports "fulfillment-service/internal/features/orders/ports"
	shipmentports "fulfillment-service/internal/features/shipments/ports"
	trackingdomain "fulfillment-service/internal/features/tracking/domain"

	"go.uber.org/zap"
)

// OrderMirrorService keeps the order's fulfillment subdocument in sync with
// shipment changes. It implements the shipment feature's OrderMirror port.
// It only ever updates existing orders; order references on shipments are
// free text and may not correspond to a real order.
type OrderMirrorService struct {
	repo   orderports.OrderRepository
	logger *zap.Logger
}

// NewOrderMirrorService creates a new OrderMirrorService.
func NewOrderMirrorService(repo orderports.OrderRepository) *OrderMirrorService {
	return &OrderMirrorService{
		repo:   repo,
		logger: logger.Get(),
	}
}

// SyncShipment writes the shipment's state onto the order's fulfillment view.
// A missing order is a silent no-op.
func (s *OrderMirrorService) SyncShipment(ctx context.Context, orderID string, update shipmentports.MirrorUpdate) error {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return fmt.Errorf("mirror: failed to load order: %w", err)
	}
	if order == nil {
		s.logger.Debug("No order behind shipment reference, skipping mirror",
			zap.String("order_id", orderID),
		)
		return nil
	}

	if order.Fulfillment == nil {
		order.Fulfillment = &domain.Fulfillment{}
	}

	f := order.Fulfillment
	f.Status = update.Status
	f.Carrier = update.Carrier
	f.TrackingNumber = update.TrackingNumber
	f.ShippedAt = update.ShippedAt
	f.DeliveredAt = update.DeliveredAt
	f.UpdatedAt = time.Now().UTC()

	f.CarrierLabel = ""
	f.TrackingURL = ""
	if info, ok := trackingdomain.LookupCarrier(update.Carrier); ok {
		f.CarrierLabel = info.Label
		f.TrackingURL = info.TrackingURL(update.TrackingNumber)
	}

	if update.Note != "" {
		f.History = append(f.History, domain.FulfillmentEvent{
			Status:    update.Status,
			Note:      update.Note,
			Timestamp: update.OccurredAt,
		})
	}

	order.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, order); err != nil {
		return fmt.Errorf("mirror: failed to save order: %w", err)
	}

	return nil
}
