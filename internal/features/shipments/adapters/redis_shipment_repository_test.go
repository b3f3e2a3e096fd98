package adapters

import (
	"context"
	"sync"
	"testing"
	"time"

	"fulfillment-service/internal/core/store"
	"fulfillment-service/internal/features/shipments/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	mr := miniredis.RunT(t)
	adapter, err := store.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return adapter
}

func newShipment(businessID, orderID, trackingNumber string) *domain.Shipment {
	return domain.NewShipment(domain.CreateShipmentParams{
		BusinessID:     businessID,
		OrderID:        orderID,
		TrackingNumber: trackingNumber,
		Quantity:       1,
	})
}

func TestRedisShipmentRepository_SaveAndGet(t *testing.T) {
	repo := NewRedisShipmentRepository(newTestStore(t))
	ctx := context.Background()

	shipment := newShipment("biz-1", "ORD-1", "TRK-1")
	require.NoError(t, repo.Save(ctx, shipment))

	loaded, err := repo.Get(ctx, shipment.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, shipment.ID, loaded.ID)
	assert.Equal(t, "biz-1", loaded.BusinessID)
	assert.Equal(t, domain.StatusProcessing, loaded.Status)
	require.Len(t, loaded.History, 1)
}

func TestRedisShipmentRepository_Get_Missing(t *testing.T) {
	repo := NewRedisShipmentRepository(newTestStore(t))

	loaded, err := repo.Get(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisShipmentRepository_ListByBusiness(t *testing.T) {
	repo := NewRedisShipmentRepository(newTestStore(t))
	ctx := context.Background()

	first := newShipment("biz-1", "", "")
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	second := newShipment("biz-1", "", "")
	other := newShipment("biz-2", "", "")

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, other))

	shipments, err := repo.ListByBusiness(ctx, "biz-1")
	require.NoError(t, err)
	require.Len(t, shipments, 2)
	// Newest first.
	assert.Equal(t, second.ID, shipments[0].ID)
	assert.Equal(t, first.ID, shipments[1].ID)
}

func TestRedisShipmentRepository_FindByOrderOrTracking(t *testing.T) {
	repo := NewRedisShipmentRepository(newTestStore(t))
	ctx := context.Background()

	shipment := newShipment("biz-1", "ORD-77", "TRK-77")
	require.NoError(t, repo.Save(ctx, shipment))

	byOrder, err := repo.FindByOrderOrTracking(ctx, "ORD-77")
	require.NoError(t, err)
	require.NotNil(t, byOrder)
	assert.Equal(t, shipment.ID, byOrder.ID)

	byTracking, err := repo.FindByOrderOrTracking(ctx, "TRK-77")
	require.NoError(t, err)
	require.NotNil(t, byTracking)
	assert.Equal(t, shipment.ID, byTracking.ID)

	missing, err := repo.FindByOrderOrTracking(ctx, "TRK-999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// TestRedisShipmentRepository_FindByOrderOrTracking_EarliestWins verifies
// that the earliest-created shipment wins when several share an order
// reference.
func TestRedisShipmentRepository_FindByOrderOrTracking_EarliestWins(t *testing.T) {
	repo := NewRedisShipmentRepository(newTestStore(t))
	ctx := context.Background()

	older := newShipment("biz-1", "ORD-SHARED", "")
	older.CreatedAt = time.Now().UTC().Add(-2 * time.Hour)
	newer := newShipment("biz-1", "ORD-SHARED", "")

	require.NoError(t, repo.Save(ctx, newer))
	require.NoError(t, repo.Save(ctx, older))

	found, err := repo.FindByOrderOrTracking(ctx, "ORD-SHARED")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, older.ID, found.ID)
}

func TestRedisShipmentRepository_Delete(t *testing.T) {
	repo := NewRedisShipmentRepository(newTestStore(t))
	ctx := context.Background()

	shipment := newShipment("biz-1", "ORD-5", "TRK-5")
	require.NoError(t, repo.Save(ctx, shipment))
	require.NoError(t, repo.Delete(ctx, shipment))

	loaded, err := repo.Get(ctx, shipment.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	byTracking, err := repo.FindByOrderOrTracking(ctx, "TRK-5")
	require.NoError(t, err)
	assert.Nil(t, byTracking)

	shipments, err := repo.ListByBusiness(ctx, "biz-1")
	require.NoError(t, err)
	assert.Empty(t, shipments)
}

func TestRedisShipmentRepository_ClaimInventory_Once(t *testing.T) {
	repo := NewRedisShipmentRepository(newTestStore(t))
	ctx := context.Background()

	claimed, err := repo.ClaimInventory(ctx, "ship-1")
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.ClaimInventory(ctx, "ship-1")
	require.NoError(t, err)
	assert.False(t, claimed)
}

// TestRedisShipmentRepository_ClaimInventory_Concurrent verifies exactly one
// winner across concurrent claim attempts for the same shipment.
func TestRedisShipmentRepository_ClaimInventory_Concurrent(t *testing.T) {
	repo := NewRedisShipmentRepository(newTestStore(t))
	ctx := context.Background()

	const attempts = 16

	var wg sync.WaitGroup
	results := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			claimed, err := repo.ClaimInventory(ctx, "ship-race")
			assert.NoError(t, err)
			results <- claimed
		}()
	}

	wg.Wait()
	close(results)

	winners := 0
	for claimed := range results {
		if claimed {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}
