package shipment

import (
	"context"
	"strings"
	"testing"

	domainOrder "shipment-tracker/internal/domain/order"
	domainShipment "shipment-tracker/internal/domain/shipment"
	appErrors "shipment-tracker/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestImporter(repo *fakeRepo, gateway *fakeGateway) *Importer {
	svc, _, _ := newTestService(repo, newFakeRiderRepo())
	return NewImporter(repo, gateway, svc)
}

func TestIsEligible(t *testing.T) {
	im := newTestImporter(newFakeRepo(), newFakeGateway())

	ok, reason := im.IsEligible(eligibleOrder(1))
	assert.True(t, ok)
	assert.Empty(t, reason)

	digital := eligibleOrder(2)
	digital.FulfillmentType = "digital"
	ok, reason = im.IsEligible(digital)
	assert.False(t, ok)
	assert.Contains(t, reason, "physical")

	unpaid := eligibleOrder(3)
	unpaid.PaymentStatus = "pending"
	ok, reason = im.IsEligible(unpaid)
	assert.False(t, ok)
	assert.Contains(t, reason, "paid")

	partiallyPaid := eligibleOrder(4)
	partiallyPaid.PaymentStatus = domainOrder.PaymentPartiallyPaid
	ok, _ = im.IsEligible(partiallyPaid)
	assert.True(t, ok, "partially paid orders are eligible")

	cancelled := eligibleOrder(5)
	cancelled.Status = "cancelled"
	ok, reason = im.IsEligible(cancelled)
	assert.False(t, ok)
	assert.Contains(t, reason, "fulfillable")

	completed := eligibleOrder(6)
	completed.Status = domainOrder.StatusCompleted
	ok, _ = im.IsEligible(completed)
	assert.True(t, ok, "completed orders are eligible")

	noAddress := eligibleOrder(7)
	noAddress.ShippingAddress = nil
	ok, reason = im.IsEligible(noAddress)
	assert.False(t, ok)
	assert.Contains(t, reason, "address")
}

func TestCreateFromOrder(t *testing.T) {
	repo := newFakeRepo()
	im := newTestImporter(repo, newFakeGateway())

	s, err := im.CreateFromOrder(context.Background(), eligibleOrder(42))
	require.NoError(t, err)

	assert.Equal(t, int64(42), s.OrderID)
	assert.Equal(t, "fluentcart", s.OrderSource)
	assert.Equal(t, domainShipment.StatusPending, s.CurrentStatus)

	require.NotNil(t, s.TrackingNumber)
	assert.True(t, strings.HasPrefix(*s.TrackingNumber, "FSA"), "imported shipments use the FSA prefix, got %q", *s.TrackingNumber)
	assert.Len(t, *s.TrackingNumber, len("FSA")+8+8)

	// 2 widgets at 1.0 plus 1 gadget at 1.0
	assert.InDelta(t, 3.0, s.WeightTotal, 1e-9)
	require.NotNil(t, s.PackageInfo)
	assert.Equal(t, 2, s.PackageInfo.TotalItems)
	assert.Equal(t, 3, s.PackageInfo.TotalQuantity)

	require.NotNil(t, s.ShippingAddress)
	assert.Equal(t, "Ada Lovelace", s.ShippingAddress.Name)
	require.NotNil(t, s.DeliveryAddress)
	assert.Equal(t, s.ShippingAddress.Line1, s.DeliveryAddress.Line1)

	assert.Equal(t, int64(499), s.ShippingCost)
	assert.Equal(t, "ada@example.com", s.Meta["customer_email"])
	assert.NotNil(t, s.EstimatedDelivery)

	events, err := repo.ListEvents(context.Background(), s.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Shipment created from order #42", events[0].EventDescription)
	require.NotNil(t, events[0].EventLocation)
	assert.Equal(t, "Fulfillment Center", *events[0].EventLocation)
	assert.Equal(t, domainShipment.StatusPending, events[0].EventStatus)
}

func TestCreateFromOrderRejectsIneligible(t *testing.T) {
	im := newTestImporter(newFakeRepo(), newFakeGateway())

	o := eligibleOrder(43)
	o.FulfillmentType = "digital"

	_, err := im.CreateFromOrder(context.Background(), o)
	assert.ErrorIs(t, err, domainShipment.ErrOrderNotEligible)
}

func TestCreateFromOrderRejectsDuplicate(t *testing.T) {
	im := newTestImporter(newFakeRepo(), newFakeGateway())

	_, err := im.CreateFromOrder(context.Background(), eligibleOrder(44))
	require.NoError(t, err)

	_, err = im.CreateFromOrder(context.Background(), eligibleOrder(44))
	assert.ErrorIs(t, err, domainShipment.ErrShipmentAlreadyExists)
}

func TestCreateFromOrderMapsShippingStatus(t *testing.T) {
	im := newTestImporter(newFakeRepo(), newFakeGateway())

	o := eligibleOrder(45)
	o.ShippingStatus = "shipped"

	s, err := im.CreateFromOrder(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, domainShipment.StatusShipped, s.CurrentStatus)
}

func TestImportOrderRequiresGateway(t *testing.T) {
	gateway := newFakeGateway()
	gateway.available = false
	im := newTestImporter(newFakeRepo(), gateway)

	_, err := im.ImportOrder(context.Background(), 46)
	assert.ErrorIs(t, err, appErrors.ErrIntegrationInactive)
}

func TestImportOrderUnknownOrder(t *testing.T) {
	im := newTestImporter(newFakeRepo(), newFakeGateway())

	_, err := im.ImportOrder(context.Background(), 999)
	assert.ErrorIs(t, err, domainOrder.ErrOrderNotFound)
}

func TestBulkImport(t *testing.T) {
	repo := newFakeRepo()
	gateway := newFakeGateway()

	gateway.orders[50] = eligibleOrder(50)
	gateway.orders[51] = eligibleOrder(51)
	digital := eligibleOrder(52)
	digital.FulfillmentType = "digital"
	gateway.orders[52] = digital

	im := newTestImporter(repo, gateway)

	// Pre-existing shipment for order 51 forces a skip.
	_, err := im.CreateFromOrder(context.Background(), eligibleOrder(51))
	require.NoError(t, err)

	result, err := im.BulkImport(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 2, result.Skipped)
	assert.Len(t, result.Results, 3)

	outcomes := make(map[int64]string)
	for _, r := range result.Results {
		outcomes[r.OrderID] = r.Outcome
	}
	assert.Equal(t, "created", outcomes[50])
	assert.Equal(t, "skipped", outcomes[51])
	assert.Equal(t, "skipped", outcomes[52])
}

func TestSyncToOrder(t *testing.T) {
	repo := newFakeRepo()
	gateway := newFakeGateway()
	gateway.orders[60] = eligibleOrder(60)
	im := newTestImporter(repo, gateway)

	s, err := im.CreateFromOrder(context.Background(), eligibleOrder(60))
	require.NoError(t, err)

	s.CurrentStatus = domainShipment.StatusInTransit
	require.NoError(t, im.SyncToOrder(context.Background(), s))
	assert.Equal(t, "shipped", gateway.shippingStatusUpdates[60], "in transit collapses onto shipped")

	s.CurrentStatus = domainShipment.StatusReturned
	require.NoError(t, im.SyncToOrder(context.Background(), s))
	assert.Equal(t, "unshippable", gateway.shippingStatusUpdates[60])
}

func TestSyncToOrderSkipsForeignSources(t *testing.T) {
	gateway := newFakeGateway()
	im := newTestImporter(newFakeRepo(), gateway)

	s := &domainShipment.Shipment{OrderID: 61, OrderSource: "manual", CurrentStatus: domainShipment.StatusShipped}
	require.NoError(t, im.SyncToOrder(context.Background(), s))
	assert.Empty(t, gateway.shippingStatusUpdates)
}

func TestSyncFromOrderAppliesChange(t *testing.T) {
	repo := newFakeRepo()
	gateway := newFakeGateway()
	gateway.orders[62] = eligibleOrder(62)
	im := newTestImporter(repo, gateway)

	s, err := im.CreateFromOrder(context.Background(), eligibleOrder(62))
	require.NoError(t, err)
	require.Equal(t, domainShipment.StatusPending, s.CurrentStatus)

	gateway.orders[62].ShippingStatus = "shipped"

	changed, err := im.SyncFromOrder(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, changed)

	stored, err := repo.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, domainShipment.StatusShipped, stored.CurrentStatus)
	assert.NotNil(t, stored.ShippedAt, "sync flows through the normal status update path")

	events, err := repo.ListEvents(context.Background(), s.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Status synced from order #62", events[1].EventDescription)
}

func TestSyncFromOrderTerminalOrderStateWins(t *testing.T) {
	repo := newFakeRepo()
	gateway := newFakeGateway()
	gateway.orders[63] = eligibleOrder(63)
	im := newTestImporter(repo, gateway)

	s, err := im.CreateFromOrder(context.Background(), eligibleOrder(63))
	require.NoError(t, err)

	gateway.orders[63].ShippingStatus = "shipped"
	gateway.orders[63].Status = "refunded"

	changed, err := im.SyncFromOrder(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, changed)

	stored, err := repo.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, domainShipment.StatusCancelled, stored.CurrentStatus)
}

func TestSyncFromOrderNoChange(t *testing.T) {
	repo := newFakeRepo()
	gateway := newFakeGateway()
	gateway.orders[64] = eligibleOrder(64)
	im := newTestImporter(repo, gateway)

	s, err := im.CreateFromOrder(context.Background(), eligibleOrder(64))
	require.NoError(t, err)

	changed, err := im.SyncFromOrder(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, changed)

	events, err := repo.ListEvents(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestRefreshFromOrders(t *testing.T) {
	repo := newFakeRepo()
	gateway := newFakeGateway()
	gateway.orders[70] = eligibleOrder(70)
	gateway.orders[71] = eligibleOrder(71)
	im := newTestImporter(repo, gateway)

	first, err := im.CreateFromOrder(context.Background(), eligibleOrder(70))
	require.NoError(t, err)
	_, err = im.CreateFromOrder(context.Background(), eligibleOrder(71))
	require.NoError(t, err)

	gateway.orders[70].ShippingStatus = "delivered"

	updated, err := im.RefreshFromOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	stored, err := repo.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, domainShipment.StatusDelivered, stored.CurrentStatus)
}
