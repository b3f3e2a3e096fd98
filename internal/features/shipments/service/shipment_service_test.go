package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment-service/internal/features/shipments/domain"
	"fulfillment-service/internal/features/shipments/ports"
	trackingdomain "fulfillment-service/internal/features/tracking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Save(ctx context.Context, shipment *domain.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *mockRepository) Get(ctx context.Context, shipmentID string) (*domain.Shipment, error) {
	args := m.Called(ctx, shipmentID)
	shipment, _ := args.Get(0).(*domain.Shipment)
	return shipment, args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, shipment *domain.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *mockRepository) ListByBusiness(ctx context.Context, businessID string) ([]*domain.Shipment, error) {
	args := m.Called(ctx, businessID)
	shipments, _ := args.Get(0).([]*domain.Shipment)
	return shipments, args.Error(1)
}

func (m *mockRepository) FindByOrderOrTracking(ctx context.Context, needle string) (*domain.Shipment, error) {
	args := m.Called(ctx, needle)
	shipment, _ := args.Get(0).(*domain.Shipment)
	return shipment, args.Error(1)
}

func (m *mockRepository) ClaimInventory(ctx context.Context, shipmentID string) (bool, error) {
	args := m.Called(ctx, shipmentID)
	return args.Bool(0), args.Error(1)
}

type mockInventory struct {
	mock.Mock
}

func (m *mockInventory) RecordDelivery(ctx context.Context, productID string, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchLiveTracking(ctx context.Context, carrier, trackingNumber string) *trackingdomain.TrackingSnapshot {
	args := m.Called(ctx, carrier, trackingNumber)
	snapshot, _ := args.Get(0).(*trackingdomain.TrackingSnapshot)
	return snapshot
}

type mockMirror struct {
	mock.Mock
}

func (m *mockMirror) SyncShipment(ctx context.Context, orderID string, update ports.MirrorUpdate) error {
	args := m.Called(ctx, orderID, update)
	return args.Error(0)
}

type serviceMocks struct {
	repo      *mockRepository
	inventory *mockInventory
	fetcher   *mockFetcher
	mirror    *mockMirror
}

func newTestService() (*ShipmentServiceImpl, *serviceMocks) {
	m := &serviceMocks{
		repo:      new(mockRepository),
		inventory: new(mockInventory),
		fetcher:   new(mockFetcher),
		mirror:    new(mockMirror),
	}
	return NewShipmentService(m.repo, m.inventory, m.fetcher, m.mirror), m
}

func ownedShipment(businessID string) *domain.Shipment {
	return domain.NewShipment(domain.CreateShipmentParams{
		BusinessID:     businessID,
		OrderID:        "ORD-1",
		ProductID:      "P1",
		Carrier:        trackingdomain.CarrierCourierGuy,
		TrackingNumber: "TRK-1",
		Quantity:       2,
	})
}

func TestCreate_SavesAndMirrors(t *testing.T) {
	svc, m := newTestService()

	m.repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Shipment")).Return(nil)
	m.mirror.On("SyncShipment", mock.Anything, "ORD-1", mock.AnythingOfType("ports.MirrorUpdate")).Return(nil)

	shipment, err := svc.Create(context.Background(), domain.CreateShipmentParams{
		BusinessID: "biz-1",
		OrderID:    "ORD-1",
		Quantity:   3,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, shipment.Status)
	assert.Equal(t, 3, shipment.Quantity)
	m.repo.AssertExpectations(t)
	m.mirror.AssertExpectations(t)
}

func TestCreate_NoOrderReference_SkipsMirror(t *testing.T) {
	svc, m := newTestService()

	m.repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Create(context.Background(), domain.CreateShipmentParams{BusinessID: "biz-1"})

	require.NoError(t, err)
	m.mirror.AssertNotCalled(t, "SyncShipment", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	svc, m := newTestService()
	shipment := ownedShipment("biz-1")

	m.repo.On("Get", mock.Anything, shipment.ID).Return(shipment, nil)
	m.repo.On("Save", mock.Anything, shipment).Return(nil)
	m.fetcher.On("FetchLiveTracking", mock.Anything, trackingdomain.CarrierCourierGuy, "TRK-1").Return(nil)
	m.mirror.On("SyncShipment", mock.Anything, "ORD-1", mock.Anything).Return(nil)

	updated, err := svc.UpdateStatus(context.Background(), "biz-1", shipment.ID, ports.UpdateStatusParams{
		Status: "in transit",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusInTransit, updated.Status)
	require.NotNil(t, updated.ShippedAt)
	require.Len(t, updated.History, 2)
	assert.Equal(t, "Status changed to In Transit", updated.History[1].Note)
}

// A carrier outage must never block the transition itself.
func TestUpdateStatus_CarrierOutage_StillTransitions(t *testing.T) {
	svc, m := newTestService()
	shipment := ownedShipment("biz-1")

	m.repo.On("Get", mock.Anything, shipment.ID).Return(shipment, nil)
	m.repo.On("Save", mock.Anything, shipment).Return(nil)
	// Fetcher absorbs the failure and reports no data.
	m.fetcher.On("FetchLiveTracking", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.mirror.On("SyncShipment", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.UpdateStatus(context.Background(), "biz-1", shipment.ID, ports.UpdateStatusParams{
		Status: "In Transit",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusInTransit, updated.Status)
	assert.NotNil(t, updated.ShippedAt)
	assert.Nil(t, updated.Live)
}

func TestUpdateStatus_ShippedAtSetOnce(t *testing.T) {
	svc, m := newTestService()
	shipment := ownedShipment("biz-1")
	firstShipped := time.Now().UTC().Add(-time.Hour)
	shipment.ShippedAt = &firstShipped
	shipment.Status = domain.StatusInTransit

	m.repo.On("Get", mock.Anything, shipment.ID).Return(shipment, nil)
	m.repo.On("Save", mock.Anything, shipment).Return(nil)
	m.fetcher.On("FetchLiveTracking", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.mirror.On("SyncShipment", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.UpdateStatus(context.Background(), "biz-1", shipment.ID, ports.UpdateStatusParams{
		Status: "In Transit",
	})

	require.NoError(t, err)
	assert.Equal(t, firstShipped, *updated.ShippedAt)
}

func TestUpdateStatus_UnrecognizedStatus_AuditedNotApplied(t *testing.T) {
	svc, m := newTestService()
	shipment := ownedShipment("biz-1")

	m.repo.On("Get", mock.Anything, shipment.ID).Return(shipment, nil)
	m.repo.On("Save", mock.Anything, shipment).Return(nil)
	m.fetcher.On("FetchLiveTracking", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.mirror.On("SyncShipment", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.UpdateStatus(context.Background(), "biz-1", shipment.ID, ports.UpdateStatusParams{
		Status: "Shipped",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, updated.Status)
	require.Len(t, updated.History, 2)
	assert.Equal(t, `Ignored unrecognized status "Shipped"`, updated.History[1].Note)
	assert.Equal(t, domain.StatusProcessing, updated.History[1].Status)
}

func TestUpdateStatus_Delivered_AdjustsInventoryOnce(t *testing.T) {
	svc, m := newTestService()
	shipment := ownedShipment("biz-1")

	m.repo.On("Get", mock.Anything, shipment.ID).Return(shipment, nil)
	m.repo.On("Save", mock.Anything, shipment).Return(nil)
	m.repo.On("ClaimInventory", mock.Anything, shipment.ID).Return(true, nil).Once()
	m.inventory.On("RecordDelivery", mock.Anything, "P1", 2).Return(nil).Once()
	m.fetcher.On("FetchLiveTracking", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.mirror.On("SyncShipment", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.UpdateStatus(context.Background(), "biz-1", shipment.ID, ports.UpdateStatusParams{
		Status: "Delivered",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Status)
	assert.True(t, updated.InventoryCounted)
	require.NotNil(t, updated.DeliveredAt)
	firstDeliveredAt := *updated.DeliveredAt

	// A repeated delivery transition neither re-claims nor re-adjusts.
	updated, err = svc.UpdateStatus(context.Background(), "biz-1", shipment.ID, ports.UpdateStatusParams{
		Status: "Delivered",
	})

	require.NoError(t, err)
	assert.Equal(t, firstDeliveredAt, *updated.DeliveredAt)
	m.repo.AssertNumberOfCalls(t, "ClaimInventory", 1)
	m.inventory.AssertNumberOfCalls(t, "RecordDelivery", 1)
}

// When another writer wins the claim, the loser records the adjustment as
// accounted for without touching the product counters.
func TestUpdateStatus_Delivered_ClaimLost(t *testing.T) {
	svc, m := newTestService()
	shipment := ownedShipment("biz-1")

	m.repo.On("Get", mock.Anything, shipment.ID).Return(shipment, nil)
	m.repo.On("Save", mock.Anything, shipment).Return(nil)
	m.repo.On("ClaimInventory", mock.Anything, shipment.ID).Return(false, nil)
	m.fetcher.On("FetchLiveTracking", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.mirror.On("SyncShipment", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.UpdateStatus(context.Background(), "biz-1", shipment.ID, ports.UpdateStatusParams{
		Status: "Delivered",
	})

	require.NoError(t, err)
	assert.True(t, updated.InventoryCounted)
	m.inventory.AssertNotCalled(t, "RecordDelivery", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_Delivered_NoProduct_SkipsInventory(t *testing.T) {
	svc, m := newTestService()
	shipment := ownedShipment("biz-1")
	shipment.ProductID = ""

	m.repo.On("Get", mock.Anything, shipment.ID).Return(shipment, nil)
	m.repo.On("Save", mock.Anything, shipment).Return(nil)
	m.fetcher.On("FetchLiveTracking", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.mirror.On("SyncShipment", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.UpdateStatus(context.Background(), "biz-1", shipment.ID, ports.UpdateStatusParams{
		Status: "Delivered",
	})

	require.NoError(t, err)
	assert.False(t, updated.InventoryCounted)
	m.repo.AssertNotCalled(t, "ClaimInventory", mock.Anything, mock.Anything)
}

func TestUpdateStatus_LiveDataNeverOverridesStatus(t *testing.T) {
	svc, m := newTestService()
	shipment := ownedShipment("biz-1")

	snapshot := &trackingdomain.TrackingSnapshot{Status: trackingdomain.LiveStatusDelivered}
	m.repo.On("Get", mock.Anything, shipment.ID).Return(shipment, nil)
	m.repo.On("Save", mock.Anything, shipment).Return(nil)
	m.fetcher.On("FetchLiveTracking", mock.Anything, mock.Anything, mock.Anything).Return(snapshot)
	m.mirror.On("SyncShipment", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.UpdateStatus(context.Background(), "biz-1", shipment.ID, ports.UpdateStatusParams{
		Status: "In Transit",
	})

	require.NoError(t, err)
	// Carrier says delivered; the authoritative status stays what the seller set.
	assert.Equal(t, domain.StatusInTransit, updated.Status)
	require.NotNil(t, updated.Live)
	assert.Equal(t, trackingdomain.LiveStatusDelivered, updated.Live.Status)
	m.repo.AssertNotCalled(t, "ClaimInventory", mock.Anything, mock.Anything)
}

func TestUpdateStatus_BothCancelSpellingsAccepted(t *testing.T) {
	svc, m := newTestService()

	for _, spelling := range []string{"Canceled", "Cancelled"} {
		shipment := ownedShipment("biz-1")
		m.repo.On("Get", mock.Anything, shipment.ID).Return(shipment, nil).Once()
		m.repo.On("Save", mock.Anything, shipment).Return(nil).Once()
		m.fetcher.On("FetchLiveTracking", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		m.mirror.On("SyncShipment", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		updated, err := svc.UpdateStatus(context.Background(), "biz-1", shipment.ID, ports.UpdateStatusParams{
			Status: spelling,
		})

		require.NoError(t, err)
		assert.Equal(t, spelling, string(updated.Status))
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, m := newTestService()

	m.repo.On("Get", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.UpdateStatus(context.Background(), "biz-1", "missing", ports.UpdateStatusParams{Status: "Delivered"})

	assert.ErrorIs(t, err, ErrShipmentNotFound)
}

func TestUpdateStatus_Forbidden(t *testing.T) {
	svc, m := newTestService()
	shipment := ownedShipment("biz-1")

	m.repo.On("Get", mock.Anything, shipment.ID).Return(shipment, nil)

	_, err := svc.UpdateStatus(context.Background(), "biz-2", shipment.ID, ports.UpdateStatusParams{Status: "Delivered"})

	assert.ErrorIs(t, err, ErrForbidden)
	m.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRefreshLiveTracking(t *testing.T) {
	svc, m := newTestService()
	shipment := ownedShipment("biz-1")

	eta := time.Now().UTC().Add(48 * time.Hour)
	snapshot := &trackingdomain.TrackingSnapshot{
		Status:            trackingdomain.LiveStatusInTransit,
		EstimatedDelivery: &eta,
	}
	m.repo.On("Get", mock.Anything, shipment.ID).Return(shipment, nil)
	m.repo.On("Save", mock.Anything, shipment).Return(nil)
	m.fetcher.On("FetchLiveTracking", mock.Anything, trackingdomain.CarrierCourierGuy, "TRK-1").Return(snapshot)

	updated, err := svc.RefreshLiveTracking(context.Background(), "biz-1", shipment.ID)

	require.NoError(t, err)
	require.NotNil(t, updated.Live)
	assert.Equal(t, trackingdomain.LiveStatusInTransit, updated.Live.Status)
	require.NotNil(t, updated.Live.EstimatedDelivery)
	assert.Equal(t, eta, *updated.Live.EstimatedDelivery)
	// Refreshing the cache leaves the audit log alone.
	assert.Len(t, updated.History, 1)
}

func TestRefreshLiveTracking_OtherCarrier_Skipped(t *testing.T) {
	svc, m := newTestService()
	shipment := ownedShipment("biz-1")
	shipment.Carrier = trackingdomain.CarrierOther

	m.repo.On("Get", mock.Anything, shipment.ID).Return(shipment, nil)
	m.repo.On("Save", mock.Anything, shipment).Return(nil)

	updated, err := svc.RefreshLiveTracking(context.Background(), "biz-1", shipment.ID)

	require.NoError(t, err)
	assert.Nil(t, updated.Live)
	m.fetcher.AssertNotCalled(t, "FetchLiveTracking", mock.Anything, mock.Anything, mock.Anything)
}

func TestFindByOrderOrTracking(t *testing.T) {
	svc, m := newTestService()
	shipment := ownedShipment("biz-1")

	m.repo.On("FindByOrderOrTracking", mock.Anything, "ORD-1").Return(shipment, nil)

	found, err := svc.FindByOrderOrTracking(context.Background(), "ORD-1")

	require.NoError(t, err)
	assert.Equal(t, shipment.ID, found.ID)
}

func TestFindByOrderOrTracking_NotFound(t *testing.T) {
	svc, m := newTestService()

	m.repo.On("FindByOrderOrTracking", mock.Anything, "TRK-999").Return(nil, nil)

	_, err := svc.FindByOrderOrTracking(context.Background(), "TRK-999")

	assert.ErrorIs(t, err, ErrShipmentNotFound)
}

func TestListByProduct_Filters(t *testing.T) {
	svc, m := newTestService()

	matching := ownedShipment("biz-1")
	other := ownedShipment("biz-1")
	other.ProductID = "P2"

	m.repo.On("ListByBusiness", mock.Anything, "biz-1").Return([]*domain.Shipment{matching, other}, nil)

	shipments, err := svc.ListByProduct(context.Background(), "biz-1", "P1")

	require.NoError(t, err)
	require.Len(t, shipments, 1)
	assert.Equal(t, matching.ID, shipments[0].ID)
}

func TestDelete(t *testing.T) {
	svc, m := newTestService()
	shipment := ownedShipment("biz-1")

	m.repo.On("Get", mock.Anything, shipment.ID).Return(shipment, nil)
	m.repo.On("Delete", mock.Anything, shipment).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), "biz-1", shipment.ID))
	m.repo.AssertExpectations(t)
}

func TestDelete_Forbidden(t *testing.T) {
	svc, m := newTestService()
	shipment := ownedShipment("biz-1")

	m.repo.On("Get", mock.Anything, shipment.ID).Return(shipment, nil)

	err := svc.Delete(context.Background(), "biz-2", shipment.ID)

	assert.ErrorIs(t, err, ErrForbidden)
	m.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// A mirror failure is absorbed; the shipment write already succeeded.
func TestUpdateStatus_MirrorFailureAbsorbed(t *testing.T) {
	svc, m := newTestService()
	shipment := ownedShipment("biz-1")

	m.repo.On("Get", mock.Anything, shipment.ID).Return(shipment, nil)
	m.repo.On("Save", mock.Anything, shipment).Return(nil)
	m.fetcher.On("FetchLiveTracking", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.mirror.On("SyncShipment", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("order store down"))

	_, err := svc.UpdateStatus(context.Background(), "biz-1", shipment.ID, ports.UpdateStatusParams{
		Status: "Processing",
	})

	assert.NoError(t, err)
}
