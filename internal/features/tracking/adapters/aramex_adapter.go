package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fulfillment-service/internal/core/config"
	"fulfillment-service/internal/core/httpclient"
	"fulfillment-service/internal/core/logger"
	"fulfillment-service/internal/features/tracking/domain"

	"go.uber.org/zap"
)

// AramexAdapter handles tracking for Aramex via their shipment tracking API.
type AramexAdapter struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewAramexAdapter creates a new AramexAdapter with the given configuration.
func NewAramexAdapter(cfg config.CouriersConfig) *AramexAdapter {
	return &AramexAdapter{
		baseURL: cfg.AramexURL,
		client:  httpclient.NewClient(trackingTimeout),
		logger:  logger.Get(),
	}
}

// aramexRequest is the POST body expected by the Aramex tracking endpoint.
type aramexRequest struct {
	Shipments []string `json:"Shipments"`
}

// aramexResponse represents the JSON structure from the Aramex API.
type aramexResponse struct {
	TrackingResults []struct {
		WaybillNumber string `json:"WaybillNumber"`
		Value         []struct {
			UpdateCode        string `json:"UpdateCode"`
			UpdateDescription string `json:"UpdateDescription"`
			UpdateDateTime    string `json:"UpdateDateTime"` // "2026-01-28T14:05:00"
			UpdateLocation    string `json:"UpdateLocation"`
		} `json:"Value"`
	} `json:"TrackingResults"`
	HasErrors bool `json:"HasErrors"`
}

// Track retrieves tracking data from Aramex.
func (a *AramexAdapter) Track(ctx context.Context, trackingNumber string) (*domain.TrackingSnapshot, error) {
	payload, err := json.Marshal(aramexRequest{Shipments: []string{trackingNumber}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := a.baseURL + "/ShippingAPI.V2/Tracking/Service_1_0.svc/json/TrackShipments"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aramex API returned status: %d", resp.StatusCode)
	}

	var arResp aramexResponse
	if err := json.NewDecoder(resp.Body).Decode(&arResp); err != nil {
		return nil, fmt.Errorf("failed to parse aramex response: %w", err)
	}

	return a.mapResponseToDomain(arResp)
}

// mapResponseToDomain converts an Aramex response to a normalized snapshot.
// The latest update (first entry, Aramex returns newest first) drives the
// snapshot status.
func (a *AramexAdapter) mapResponseToDomain(resp aramexResponse) (*domain.TrackingSnapshot, error) {
	if resp.HasErrors {
		return nil, fmt.Errorf("aramex reported errors for tracking request")
	}
	if len(resp.TrackingResults) == 0 {
		return nil, fmt.Errorf("no tracking results found")
	}

	result := resp.TrackingResults[0]

	snapshot := &domain.TrackingSnapshot{
		Status:     domain.LiveStatusUnknown,
		Events:     make([]domain.TrackingEvent, 0, len(result.Value)),
		LastUpdate: time.Now().UTC(),
	}

	for i, update := range result.Value {
		date, err := time.Parse("2006-01-02T15:04:05", update.UpdateDateTime)
		if err != nil {
			a.logger.Warn("Unparseable Aramex update time",
				zap.String("time", update.UpdateDateTime),
			)
		}

		snapshot.Events = append(snapshot.Events, domain.TrackingEvent{
			Date:        date,
			Description: update.UpdateDescription,
			Location:    update.UpdateLocation,
			Code:        update.UpdateCode,
		})

		if i == 0 {
			snapshot.Status = domain.NormalizeCarrierStatus(update.UpdateDescription)
		}
	}

	return snapshot, nil
}

// Carrier returns the carrier code this adapter serves.
func (a *AramexAdapter) Carrier() string {
	return domain.CarrierAramex
}
