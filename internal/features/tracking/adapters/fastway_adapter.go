package adapter

import (
	"context"
	"encoding/json"
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

// FastwayAdapter handles tracking for Fastway Couriers via their public API.
type FastwayAdapter struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewFastwayAdapter creates a new FastwayAdapter with the given configuration.
func NewFastwayAdapter(cfg config.CouriersConfig) *FastwayAdapter {
	return &FastwayAdapter{
		baseURL: cfg.FastwayURL,
		client:  httpclient.NewClient(trackingTimeout),
		logger:  logger.Get(),
	}
}

// fastwayResponse represents the JSON structure from the Fastway API.
type fastwayResponse struct {
	Result struct {
		LabelNumber string `json:"LabelNumber"`
		Status      string `json:"Status"`
		Scans       []struct {
			Date        string `json:"Date"` // "28/01/2026 14:05"
			Description string `json:"Description"`
			Name        string `json:"Name"`
			StatusCode  string `json:"StatusCode"`
		} `json:"Scans"`
	} `json:"result"`
	Error string `json:"error"`
}

// Track retrieves tracking data from Fastway.
func (a *FastwayAdapter) Track(ctx context.Context, trackingNumber string) (*domain.TrackingSnapshot, error) {
	endpoint := fmt.Sprintf("%s/v4/tracktrace/detail/%s", a.baseURL, url.PathEscape(trackingNumber))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fastway API returned status: %d", resp.StatusCode)
	}

	var fwResp fastwayResponse
	if err := json.NewDecoder(resp.Body).Decode(&fwResp); err != nil {
		return nil, fmt.Errorf("failed to parse fastway response: %w", err)
	}

	return a.mapResponseToDomain(fwResp)
}

// mapResponseToDomain converts a Fastway response to a normalized snapshot.
func (a *FastwayAdapter) mapResponseToDomain(resp fastwayResponse) (*domain.TrackingSnapshot, error) {
	if resp.Error != "" {
		return nil, fmt.Errorf("fastway error: %s", resp.Error)
	}

	snapshot := &domain.TrackingSnapshot{
		Status:     domain.NormalizeCarrierStatus(resp.Result.Status),
		Events:     make([]domain.TrackingEvent, 0, len(resp.Result.Scans)),
		LastUpdate: time.Now().UTC(),
	}

	for _, scan := range resp.Result.Scans {
		date, err := time.Parse("02/01/2006 15:04", scan.Date)
		if err != nil {
			a.logger.Warn("Unparseable Fastway scan date", zap.String("date", scan.Date))
		}

		snapshot.Events = append(snapshot.Events, domain.TrackingEvent{
			Date:        date,
			Description: scan.Description,
			Location:    scan.Name,
			Code:        scan.StatusCode,
		})
	}

	return snapshot, nil
}

// Carrier returns the carrier code this adapter serves.
func (a *FastwayAdapter) Carrier() string {
	return domain.CarrierFastway
}
