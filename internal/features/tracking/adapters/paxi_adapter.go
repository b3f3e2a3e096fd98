package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fulfillment-service/internal/core/config"
	"fulfillment-service/internal/core/logger"
	"fulfillment-service/internal/features/tracking/domain"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"go.uber.org/zap"
)

// PaxiAdapter handles tracking for PAXI pickup-point parcels. PAXI exposes no
// public JSON API, so the adapter drives the public tracking page headlessly
// and hijacks the XHR the page makes.
type PaxiAdapter struct {
	baseURL string
	logger  *zap.Logger
}

// NewPaxiAdapter creates a new PaxiAdapter with the given configuration.
func NewPaxiAdapter(cfg config.CouriersConfig) *PaxiAdapter {
	return &PaxiAdapter{
		baseURL: cfg.PaxiURL,
		logger:  logger.Get(),
	}
}

// paxiResponse represents the JSON structure the PAXI tracking page fetches.
type paxiResponse struct {
	ParcelNumber string `json:"parcel_number"`
	State        string `json:"state"`
	Events       []struct {
		Timestamp   string `json:"timestamp"` // "2026-01-28 14:05"
		Description string `json:"description"`
		Store       string `json:"store"`
		Code        string `json:"code"`
	} `json:"events"`
}

// Track retrieves tracking data by scraping the PAXI tracking page. Browser
// work gets a wider budget than plain HTTP calls.
func (a *PaxiAdapter) Track(ctx context.Context, trackingNumber string) (*domain.TrackingSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	pageURL := fmt.Sprintf("%s?number=%s", a.baseURL, trackingNumber)

	a.logger.Debug("Launching browser for PAXI tracking",
		zap.String("tracking_number", trackingNumber),
	)

	l := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().Context(ctx).ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer browser.Close()

	page := browser.MustPage(pageURL)

	router := page.HijackRequests()
	defer router.MustStop()

	done := make(chan []byte)

	router.MustAdd("*/api/v1/parcels/track*", func(hctx *rod.Hijack) {
		if err := hctx.LoadResponse(http.DefaultClient, true); err != nil {
			return
		}
		done <- []byte(hctx.Response.Body())
	})

	go router.Run()

	select {
	case body := <-done:
		return a.parseResponse(body)

	case <-ctx.Done():
		return nil, fmt.Errorf("timeout waiting for courier response: %w", ctx.Err())
	}
}

// parseResponse converts a raw PAXI payload into a normalized snapshot.
func (a *PaxiAdapter) parseResponse(body []byte) (*domain.TrackingSnapshot, error) {
	var resp paxiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse paxi response: %w", err)
	}

	snapshot := &domain.TrackingSnapshot{
		Status:     domain.NormalizeCarrierStatus(resp.State),
		Events:     make([]domain.TrackingEvent, 0, len(resp.Events)),
		LastUpdate: time.Now().UTC(),
	}

	for _, event := range resp.Events {
		date, err := time.Parse("2006-01-02 15:04", event.Timestamp)
		if err != nil {
			a.logger.Warn("Unparseable PAXI event timestamp",
				zap.String("timestamp", event.Timestamp),
			)
		}

		snapshot.Events = append(snapshot.Events, domain.TrackingEvent{
			Date:        date,
			Description: event.Description,
			Location:    event.Store,
			Code:        event.Code,
		})
	}

	return snapshot, nil
}

// Carrier returns the carrier code this adapter serves.
func (a *PaxiAdapter) Carrier() string {
	return domain.CarrierPaxi
}
