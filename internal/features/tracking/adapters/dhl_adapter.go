package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"fulfillment-service/internal/core/config"
	"fulfillment-service/internal/core/httpclient"
	"fulfillment-service/internal/core/logger"
	"fulfillment-service/internal/features/tracking/domain"

	"go.uber.org/zap"
)

// DHLAdapter handles tracking for DHL via their unified tracking API.
type DHLAdapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewDHLAdapter creates a new DHLAdapter. A missing API key does not fail
// construction; Track reports the problem instead.
func NewDHLAdapter(cfg config.CouriersConfig) *DHLAdapter {
	return &DHLAdapter{
		baseURL: cfg.DHLURL,
		apiKey:  cfg.DHLAPIKey,
		client:  httpclient.NewClient(trackingTimeout),
		logger:  logger.Get(),
	}
}

// dhlResponse represents the JSON structure from the DHL unified tracking API.
type dhlResponse struct {
	Shipments []struct {
		ID     string `json:"id"`
		Status struct {
			Timestamp   string `json:"timestamp"` // "2026-01-28T14:05:00"
			StatusCode  string `json:"statusCode"`
			Description string `json:"description"`
		} `json:"status"`
		EstimatedTimeOfDelivery string `json:"estimatedTimeOfDelivery"` // "2026-01-31"
		Events                  []struct {
			Timestamp   string `json:"timestamp"`
			StatusCode  string `json:"statusCode"`
			Description string `json:"description"`
			Location    struct {
				Address struct {
					AddressLocality string `json:"addressLocality"`
				} `json:"address"`
			} `json:"location"`
		} `json:"events"`
	} `json:"shipments"`
}

// Track retrieves tracking data from DHL.
func (a *DHLAdapter) Track(ctx context.Context, trackingNumber string) (*domain.TrackingSnapshot, error) {
	if a.apiKey == "" {
		return nil, errors.New("dhl api key not configured")
	}

	endpoint := fmt.Sprintf("%s/track/shipments?trackingNumber=%s", a.baseURL, url.QueryEscape(trackingNumber))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("DHL-API-Key", a.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dhl API returned status: %d", resp.StatusCode)
	}

	var dhlResp dhlResponse
	if err := json.NewDecoder(resp.Body).Decode(&dhlResp); err != nil {
		return nil, fmt.Errorf("failed to parse dhl response: %w", err)
	}

	return a.mapResponseToDomain(dhlResp)
}

// mapResponseToDomain converts a DHL response to a normalized snapshot.
func (a *DHLAdapter) mapResponseToDomain(resp dhlResponse) (*domain.TrackingSnapshot, error) {
	if len(resp.Shipments) == 0 {
		return nil, fmt.Errorf("no tracking results found")
	}

	shipment := resp.Shipments[0]

	snapshot := &domain.TrackingSnapshot{
		Status:     domain.NormalizeCarrierStatus(shipment.Status.Description),
		Events:     make([]domain.TrackingEvent, 0, len(shipment.Events)),
		LastUpdate: time.Now().UTC(),
	}

	if shipment.EstimatedTimeOfDelivery != "" {
		if eta, err := time.Parse("2006-01-02", shipment.EstimatedTimeOfDelivery); err == nil {
			snapshot.EstimatedDelivery = &eta
		}
	}

	for _, event := range shipment.Events {
		date, err := time.Parse("2006-01-02T15:04:05", event.Timestamp)
		if err != nil {
			a.logger.Warn("Unparseable DHL event timestamp",
				zap.String("timestamp", event.Timestamp),
			)
		}

		snapshot.Events = append(snapshot.Events, domain.TrackingEvent{
			Date:        date,
			Description: event.Description,
			Location:    event.Location.Address.AddressLocality,
			Code:        event.StatusCode,
		})
	}

	return snapshot, nil
}

// Carrier returns the carrier code this adapter serves.
func (a *DHLAdapter) Carrier() string {
	return domain.CarrierDHL
}
