package domain

import "time"

// TrackingSnapshot represents a normalized live-tracking result for a parcel.
type TrackingSnapshot struct {
	// Status is the canonical status derived from the carrier's response.
	Status LiveStatus `json:"status"`
	// Events contains the chronological scan events for the parcel.
	Events []TrackingEvent `json:"events"`
	// EstimatedDelivery is the carrier's delivery estimate, if reported.
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	// LastUpdate is when the carrier last updated the parcel's state.
	LastUpdate time.Time `json:"last_update"`
}

// TrackingEvent represents a single scan event in a parcel's carrier history.
type TrackingEvent struct {
	// Date is the timestamp when the event occurred.
	Date time.Time `json:"date"`
	// Description is the carrier's free-text description of the event.
	Description string `json:"description"`
	// Location is where the event occurred, if reported.
	Location string `json:"location"`
	// Code is the carrier-specific status code for this event.
	Code string `json:"code"`
}
