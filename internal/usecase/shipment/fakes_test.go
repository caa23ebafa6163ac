package shipment

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	domainOrder "shipment-tracker/internal/domain/order"
	domainRider "shipment-tracker/internal/domain/rider"
	domainShipment "shipment-tracker/internal/domain/shipment"
	"shipment-tracker/internal/logger"
	"shipment-tracker/internal/notification"

	"github.com/google/uuid"
)

func TestMain(m *testing.M) {
	if err := logger.Init("test", ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// fakeRepo is an in-memory shipment repository sufficient for service and
// importer tests.
type fakeRepo struct {
	mu        sync.Mutex
	shipments map[uuid.UUID]*domainShipment.Shipment
	events    map[uuid.UUID][]*domainShipment.TrackingEvent

	// existing tracking numbers beyond the stored shipments, used to force
	// generator collisions
	taken map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shipments: make(map[uuid.UUID]*domainShipment.Shipment),
		events:    make(map[uuid.UUID][]*domainShipment.TrackingEvent),
		taken:     make(map[string]bool),
	}
}

func (r *fakeRepo) Create(_ context.Context, s *domainShipment.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.shipments {
		if existing.OrderID == s.OrderID && existing.OrderSource == s.OrderSource {
			return domainShipment.ErrShipmentAlreadyExists
		}
		if s.TrackingNumber != nil && existing.TrackingNumber != nil && *existing.TrackingNumber == *s.TrackingNumber {
			return domainShipment.ErrDuplicateTracking
		}
	}

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	copied := *s
	r.shipments[s.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*domainShipment.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.shipments[id]
	if !ok {
		return nil, domainShipment.ErrShipmentNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeRepo) GetByTrackingNumber(_ context.Context, trackingNumber string) (*domainShipment.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.shipments {
		if s.TrackingNumber != nil && *s.TrackingNumber == trackingNumber {
			copied := *s
			return &copied, nil
		}
	}
	return nil, domainShipment.ErrShipmentNotFound
}

func (r *fakeRepo) GetByOrder(_ context.Context, orderID int64, orderSource string) (*domainShipment.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.shipments {
		if s.OrderID == orderID && s.OrderSource == orderSource {
			copied := *s
			return &copied, nil
		}
	}
	return nil, domainShipment.ErrShipmentNotFound
}

func (r *fakeRepo) Update(_ context.Context, s *domainShipment.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shipments[s.ID]; !ok {
		return domainShipment.ErrShipmentNotFound
	}
	copied := *s
	r.shipments[s.ID] = &copied
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shipments[id]; !ok {
		return domainShipment.ErrShipmentNotFound
	}
	delete(r.shipments, id)
	delete(r.events, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter *domainShipment.Filter) ([]*domainShipment.Shipment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*domainShipment.Shipment
	for _, s := range r.shipments {
		if filter.Status != nil && s.CurrentStatus != *filter.Status {
			continue
		}
		if filter.OrderSource != nil && s.OrderSource != *filter.OrderSource {
			continue
		}
		copied := *s
		matched = append(matched, &copied)
	}

	total := int64(len(matched))

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

func (r *fakeRepo) TrackingNumberExists(_ context.Context, trackingNumber string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken[trackingNumber] {
		return true, nil
	}
	for _, s := range r.shipments {
		if s.TrackingNumber != nil && *s.TrackingNumber == trackingNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) GetStatistics(_ context.Context) (*domainShipment.Statistics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &domainShipment.Statistics{ByStatus: make(map[string]int)}
	for _, s := range r.shipments {
		stats.TotalShipments++
		stats.ByStatus[string(s.CurrentStatus)]++
	}
	return stats, nil
}

func (r *fakeRepo) CreateEvent(_ context.Context, e *domainShipment.TrackingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	copied := *e
	r.events[e.ShipmentID] = append(r.events[e.ShipmentID], &copied)
	return nil
}

func (r *fakeRepo) ListEvents(_ context.Context, shipmentID uuid.UUID) ([]*domainShipment.TrackingEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := r.events[shipmentID]
	out := make([]*domainShipment.TrackingEvent, len(events))
	for i, e := range events {
		copied := *e
		out[i] = &copied
	}
	return out, nil
}

// fakeRiderRepo is an in-memory rider repository.
type fakeRiderRepo struct {
	mu     sync.Mutex
	riders map[uuid.UUID]*domainRider.Rider
}

func newFakeRiderRepo() *fakeRiderRepo {
	return &fakeRiderRepo{riders: make(map[uuid.UUID]*domainRider.Rider)}
}

func (r *fakeRiderRepo) Create(_ context.Context, rider *domainRider.Rider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rider.ID == uuid.Nil {
		rider.ID = uuid.New()
	}
	copied := *rider
	r.riders[rider.ID] = &copied
	return nil
}

func (r *fakeRiderRepo) GetByID(_ context.Context, riderID uuid.UUID) (*domainRider.Rider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rider, ok := r.riders[riderID]
	if !ok {
		return nil, domainRider.ErrRiderNotFound
	}
	copied := *rider
	return &copied, nil
}

func (r *fakeRiderRepo) Update(_ context.Context, rider *domainRider.Rider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.riders[rider.ID]; !ok {
		return domainRider.ErrRiderNotFound
	}
	copied := *rider
	r.riders[rider.ID] = &copied
	return nil
}

func (r *fakeRiderRepo) Delete(_ context.Context, riderID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.riders[riderID]; !ok {
		return domainRider.ErrRiderNotFound
	}
	delete(r.riders, riderID)
	return nil
}

func (r *fakeRiderRepo) List(_ context.Context, activeOnly bool, page, pageSize int) ([]*domainRider.Rider, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domainRider.Rider
	for _, rider := range r.riders {
		if activeOnly && !rider.IsActive {
			continue
		}
		copied := *rider
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

// fakeGateway is a canned commerce gateway.
type fakeGateway struct {
	available bool
	source    string
	orders    map[int64]*domainOrder.Order

	shippingStatusUpdates map[int64]string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		available:             true,
		source:                "fluentcart",
		orders:                make(map[int64]*domainOrder.Order),
		shippingStatusUpdates: make(map[int64]string),
	}
}

func (g *fakeGateway) Available() bool { return g.available }
func (g *fakeGateway) Source() string  { return g.source }

func (g *fakeGateway) GetOrder(_ context.Context, orderID int64) (*domainOrder.Order, error) {
	o, ok := g.orders[orderID]
	if !ok {
		return nil, domainOrder.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (g *fakeGateway) ListImportable(_ context.Context, limit int) ([]*domainOrder.Order, error) {
	var out []*domainOrder.Order
	for _, o := range g.orders {
		if len(out) >= limit {
			break
		}
		copied := *o
		out = append(out, &copied)
	}
	return out, nil
}

func (g *fakeGateway) UpdateShippingStatus(_ context.Context, orderID int64, shippingStatus string) error {
	if _, ok := g.orders[orderID]; !ok {
		return domainOrder.ErrOrderNotFound
	}
	g.shippingStatusUpdates[orderID] = shippingStatus
	return nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	published []*domainShipment.TrackingEvent
}

func (p *recordingPublisher) PublishEvent(_ *domainShipment.Shipment, e *domainShipment.TrackingEvent) error {
	p.published = append(p.published, e)
	return nil
}

// recordingNotifier captures notification kinds per shipment.
type recordingNotifier struct {
	sent []notification.Kind
}

func (n *recordingNotifier) Notify(_ context.Context, _ *domainShipment.Shipment, kind notification.Kind) error {
	n.sent = append(n.sent, kind)
	return nil
}

func eligibleOrder(id int64) *domainOrder.Order {
	return &domainOrder.Order{
		ID:              id,
		FulfillmentType: domainOrder.FulfillmentPhysical,
		PaymentStatus:   domainOrder.PaymentPaid,
		Status:          domainOrder.StatusProcessing,
		ShippingStatus:  "unshipped",
		ShippingAddress: &domainShipment.Address{
			Name:       "Ada Lovelace",
			Line1:      "12 Analytical Way",
			City:       "London",
			PostalCode: "N1 9GU",
			Country:    "GB",
		},
		CustomerEmail: "ada@example.com",
		ShippingTotal: 499,
		Currency:      "USD",
		Items: []domainOrder.Item{
			{Name: "Widget", Quantity: 2, Weight: 1.0},
			{Name: "Gadget", Quantity: 1, Weight: 1.0},
		},
	}
}

func newTestService(repo *fakeRepo, riderRepo *fakeRiderRepo) (*Service, *recordingPublisher, *recordingNotifier) {
	publisher := &recordingPublisher{}
	notifier := &recordingNotifier{}
	svc := NewService(repo, riderRepo, domainShipment.PermissivePolicy{}, notifier, publisher)
	return svc, publisher, notifier
}
