package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"fulfillment-service/internal/core/config"
	"fulfillment-service/internal/core/httpclient"
	"fulfillment-service/internal/core/logger"
	"fulfillment-service/internal/features/tracking/domain"

	"go.uber.org/zap"
)

// trackingTimeout is the fixed per-call budget for carrier HTTP requests.
const trackingTimeout = 15 * time.Second

// CourierGuyAdapter handles tracking for The Courier Guy via their REST API.
type CourierGuyAdapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewCourierGuyAdapter creates a new CourierGuyAdapter. A missing API key does
// not fail construction; Track reports the problem instead.
func NewCourierGuyAdapter(cfg config.CouriersConfig) *CourierGuyAdapter {
	return &CourierGuyAdapter{
		baseURL: cfg.CourierGuyURL,
		apiKey:  cfg.CourierGuyAPIKey,
		client:  httpclient.NewClient(trackingTimeout),
		logger:  logger.Get(),
	}
}

// courierGuyResponse represents the JSON structure from The Courier Guy API.
type courierGuyResponse struct {
	Shipment struct {
		WaybillNumber string `json:"waybill_number"`
		Status        string `json:"status"`
		EstimatedDate string `json:"estimated_delivery_date"` // "2026-01-31"
		Checkpoints   []struct {
			Time        string `json:"time"` // "2026-01-28T14:05:00"
			Status      string `json:"status"`
			Description string `json:"description"`
			Branch      string `json:"branch"`
		} `json:"checkpoints"`
	} `json:"shipment"`
}

// Track retrieves tracking data from The Courier Guy.
func (a *CourierGuyAdapter) Track(ctx context.Context, trackingNumber string) (*domain.TrackingSnapshot, error) {
	if a.apiKey == "" {
		return nil, errors.New("courier guy api key not configured")
	}

	endpoint := fmt.Sprintf("%s/v1/tracking?ref=%s", a.baseURL, url.QueryEscape(trackingNumber))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", a.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("courier guy API returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return a.parseResponse(body)
}

// parseResponse converts a raw Courier Guy payload into a normalized snapshot.
func (a *CourierGuyAdapter) parseResponse(body []byte) (*domain.TrackingSnapshot, error) {
	var resp courierGuyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse courier guy response: %w", err)
	}

	snapshot := &domain.TrackingSnapshot{
		Status:     domain.NormalizeCarrierStatus(resp.Shipment.Status),
		Events:     make([]domain.TrackingEvent, 0, len(resp.Shipment.Checkpoints)),
		LastUpdate: time.Now().UTC(),
	}

	if resp.Shipment.EstimatedDate != "" {
		if eta, err := time.Parse("2006-01-02", resp.Shipment.EstimatedDate); err == nil {
			snapshot.EstimatedDelivery = &eta
		}
	}

	for _, cp := range resp.Shipment.Checkpoints {
		date, err := time.Parse("2006-01-02T15:04:05", cp.Time)
		if err != nil {
			a.logger.Warn("Unparseable Courier Guy checkpoint time",
				zap.String("time", cp.Time),
			)
		}

		snapshot.Events = append(snapshot.Events, domain.TrackingEvent{
			Date:        date,
			Description: cp.Description,
			Location:    cp.Branch,
			Code:        cp.Status,
		})
	}

	return snapshot, nil
}

// Carrier returns the carrier code this adapter serves.
func (a *CourierGuyAdapter) Carrier() string {
	return domain.CarrierCourierGuy
}
