package domain

import "strings"

// Carrier codes accepted on shipments. CarrierOther marks a courier without an
// integration; it never gets live enrichment.
const (
	CarrierCourierGuy = "COURIER_GUY"
	CarrierFastway    = "FASTWAY"
	CarrierAramex     = "ARAMEX"
	CarrierDHL        = "DHL"
	CarrierPaxi       = "PAXI"
	CarrierOther      = "OTHER"
)

// CarrierInfo describes a courier for display purposes.
type CarrierInfo struct {
	// Code is the internal carrier code.
	Code string `json:"code"`
	// Label is the human-readable courier name.
	Label string `json:"label"`
	// trackingURL is the public tracking page template; %s is the tracking number.
	trackingURL string
}

// TrackingURL returns the courier's public tracking page for a tracking number,
// or empty if the courier has none.
func (c CarrierInfo) TrackingURL(trackingNumber string) string {
	if c.trackingURL == "" || trackingNumber == "" {
		return ""
	}
	return strings.Replace(c.trackingURL, "%s", trackingNumber, 1)
}

var carrierDirectory = map[string]CarrierInfo{
	CarrierCourierGuy: {
		Code:        CarrierCourierGuy,
		Label:       "The Courier Guy",
		trackingURL: "https://www.thecourierguy.co.za/tracking?ref=%s",
	},
	CarrierFastway: {
		Code:        CarrierFastway,
		Label:       "Fastway Couriers",
		trackingURL: "https://www.fastway.co.za/our-services/track-your-parcel?l=%s",
	},
	CarrierAramex: {
		Code:        CarrierAramex,
		Label:       "Aramex",
		trackingURL: "https://www.aramex.com/track/results?ShipmentNumber=%s",
	},
	CarrierDHL: {
		Code:        CarrierDHL,
		Label:       "DHL Express",
		trackingURL: "https://www.dhl.com/za-en/home/tracking.html?tracking-id=%s",
	},
	CarrierPaxi: {
		Code:        CarrierPaxi,
		Label:       "PAXI",
		trackingURL: "https://www.paxi.co.za/track?number=%s",
	},
	CarrierOther: {
		Code:  CarrierOther,
		Label: "Other",
	},
}

// LookupCarrier resolves a carrier code to its display info.
func LookupCarrier(code string) (CarrierInfo, bool) {
	info, ok := carrierDirectory[strings.ToUpper(strings.TrimSpace(code))]
	return info, ok
}
