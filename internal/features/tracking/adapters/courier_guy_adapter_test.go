package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment-service/internal/core/config"
	"fulfillment-service/internal/features/tracking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const courierGuyFixture = `{
    "shipment": {
        "waybill_number": "TCG123456",
        "status": "Out for delivery",
        "estimated_delivery_date": "2026-01-31",
        "checkpoints": [
            {
                "time": "2026-01-28T08:12:00",
                "status": "COLLECTED",
                "description": "Parcel collected from sender",
                "branch": "JHB Hub"
            },
            {
                "time": "2026-01-29T14:05:00",
                "status": "OFD",
                "description": "Out for delivery",
                "branch": "CPT Depot"
            }
        ]
    }
}`

// TestCourierGuyAdapter_Track_Success verifies the full request/parse path
// including the API key header.
func TestCourierGuyAdapter_Track_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret_key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "TCG123456", r.URL.Query().Get("ref"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(courierGuyFixture))
	}))
	defer ts.Close()

	a := NewCourierGuyAdapter(config.CouriersConfig{
		CourierGuyURL:    ts.URL,
		CourierGuyAPIKey: "secret_key",
	})

	snapshot, err := a.Track(context.Background(), "TCG123456")
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.Equal(t, domain.LiveStatusOutForDelivery, snapshot.Status)
	require.Len(t, snapshot.Events, 2)
	assert.Equal(t, "JHB Hub", snapshot.Events[0].Location)
	assert.Equal(t, "OFD", snapshot.Events[1].Code)
	require.NotNil(t, snapshot.EstimatedDelivery)
	assert.Equal(t, "2026-01-31", snapshot.EstimatedDelivery.Format("2006-01-02"))
}

// TestCourierGuyAdapter_Track_MissingAPIKey verifies construction survives a
// missing key and only the call fails.
func TestCourierGuyAdapter_Track_MissingAPIKey(t *testing.T) {
	a := NewCourierGuyAdapter(config.CouriersConfig{CourierGuyURL: "https://unused.test"})
	require.NotNil(t, a)

	snapshot, err := a.Track(context.Background(), "TCG123456")
	assert.Nil(t, snapshot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key not configured")
}

// TestCourierGuyAdapter_Track_Non200 verifies non-2xx responses become errors.
func TestCourierGuyAdapter_Track_Non200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	a := NewCourierGuyAdapter(config.CouriersConfig{
		CourierGuyURL:    ts.URL,
		CourierGuyAPIKey: "secret_key",
	})

	snapshot, err := a.Track(context.Background(), "TCG123456")
	assert.Nil(t, snapshot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status: 502")
}

// TestCourierGuyAdapter_parseResponse_Malformed verifies malformed payloads
// become errors, never panics.
func TestCourierGuyAdapter_parseResponse_Malformed(t *testing.T) {
	a := &CourierGuyAdapter{logger: zap.NewNop()}

	snapshot, err := a.parseResponse([]byte("<html>gateway error</html>"))
	assert.Nil(t, snapshot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

// TestCourierGuyAdapter_parseResponse_UnknownStatus verifies unclassifiable
// vendor statuses degrade to UNKNOWN.
func TestCourierGuyAdapter_parseResponse_UnknownStatus(t *testing.T) {
	a := &CourierGuyAdapter{logger: zap.NewNop()}

	snapshot, err := a.parseResponse([]byte(`{"shipment":{"status":"sorted at facility"}}`))
	require.NoError(t, err)
	assert.Equal(t, domain.LiveStatusUnknown, snapshot.Status)
	assert.Empty(t, snapshot.Events)
	assert.Nil(t, snapshot.EstimatedDelivery)
}
