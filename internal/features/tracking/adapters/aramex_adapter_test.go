package adapter

import (
	"encoding/json"
	"testing"

	"fulfillment-service/internal/features/tracking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestAramexAdapter_mapResponseToDomain_Success verifies that the newest
// update drives the snapshot status.
func TestAramexAdapter_mapResponseToDomain_Success(t *testing.T) {
	jsonContent := `{
    "TrackingResults": [
        {
            "WaybillNumber": "AR-901",
            "Value": [
                {
                    "UpdateCode": "SH014",
                    "UpdateDescription": "Delivered",
                    "UpdateDateTime": "2026-01-30T10:22:00",
                    "UpdateLocation": "Cape Town"
                },
                {
                    "UpdateCode": "SH003",
                    "UpdateDescription": "Collected from shipper",
                    "UpdateDateTime": "2026-01-28T08:12:00",
                    "UpdateLocation": "Johannesburg"
                }
            ]
        }
    ],
    "HasErrors": false
}`
	var resp aramexResponse
	require.NoError(t, json.Unmarshal([]byte(jsonContent), &resp))

	a := &AramexAdapter{logger: zap.NewNop()}
	snapshot, err := a.mapResponseToDomain(resp)

	require.NoError(t, err)
	assert.Equal(t, domain.LiveStatusDelivered, snapshot.Status)
	require.Len(t, snapshot.Events, 2)
	assert.Equal(t, "SH014", snapshot.Events[0].Code)
	assert.Equal(t, "Johannesburg", snapshot.Events[1].Location)
}

// TestAramexAdapter_mapResponseToDomain_HasErrors verifies the vendor error
// flag is surfaced.
func TestAramexAdapter_mapResponseToDomain_HasErrors(t *testing.T) {
	a := &AramexAdapter{logger: zap.NewNop()}

	snapshot, err := a.mapResponseToDomain(aramexResponse{HasErrors: true})
	assert.Nil(t, snapshot)
	assert.Error(t, err)
}

// TestAramexAdapter_mapResponseToDomain_Empty verifies missing results are an
// error, not a panic.
func TestAramexAdapter_mapResponseToDomain_Empty(t *testing.T) {
	a := &AramexAdapter{logger: zap.NewNop()}

	snapshot, err := a.mapResponseToDomain(aramexResponse{})
	assert.Nil(t, snapshot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tracking results")
}
