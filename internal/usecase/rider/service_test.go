package rider

import (
	"context"
	"os"
	"sync"
	"testing"

	domainRider "shipment-tracker/internal/domain/rider"
	"shipment-tracker/internal/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init("test", ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeRepo struct {
	mu     sync.Mutex
	riders map[uuid.UUID]*domainRider.Rider
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{riders: make(map[uuid.UUID]*domainRider.Rider)}
}

func (r *fakeRepo) Create(_ context.Context, rider *domainRider.Rider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rider.ID == uuid.Nil {
		rider.ID = uuid.New()
	}
	copied := *rider
	r.riders[rider.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, riderID uuid.UUID) (*domainRider.Rider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rider, ok := r.riders[riderID]
	if !ok {
		return nil, domainRider.ErrRiderNotFound
	}
	copied := *rider
	return &copied, nil
}

func (r *fakeRepo) Update(_ context.Context, rider *domainRider.Rider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.riders[rider.ID]; !ok {
		return domainRider.ErrRiderNotFound
	}
	copied := *rider
	r.riders[rider.ID] = &copied
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, riderID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.riders[riderID]; !ok {
		return domainRider.ErrRiderNotFound
	}
	delete(r.riders, riderID)
	return nil
}

func (r *fakeRepo) List(_ context.Context, activeOnly bool, page, pageSize int) ([]*domainRider.Rider, int64, error) {
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

func TestCreateRider(t *testing.T) {
	svc := NewService(newFakeRepo())

	result, err := svc.Create(context.Background(), &CreateRiderRequest{
		Name:        "  Dana Driver  ",
		VehicleType: "bike",
	})
	require.NoError(t, err)

	assert.Equal(t, "Dana Driver", result.Name, "names are trimmed")
	assert.Equal(t, "bike", result.VehicleType)
	assert.True(t, result.IsActive, "new riders start active")
}

func TestCreateRiderValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), &CreateRiderRequest{})
	assert.Error(t, err, "name is required")
}

func TestUpdateRider(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), &CreateRiderRequest{Name: "Dana Driver"})
	require.NoError(t, err)

	inactive := false
	phone := "+1 555 0100"
	result, err := svc.Update(context.Background(), created.ID, &UpdateRiderRequest{
		Phone:    &phone,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "+1 555 0100", result.Phone)
	assert.False(t, result.IsActive)
	assert.Equal(t, "Dana Driver", result.Name, "untouched fields survive")
}

func TestListRidersActiveOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	active, err := svc.Create(context.Background(), &CreateRiderRequest{Name: "Active"})
	require.NoError(t, err)

	parked, err := svc.Create(context.Background(), &CreateRiderRequest{Name: "Parked"})
	require.NoError(t, err)
	inactive := false
	_, err = svc.Update(context.Background(), parked.ID, &UpdateRiderRequest{IsActive: &inactive})
	require.NoError(t, err)

	result, err := svc.List(context.Background(), &RiderFilterRequest{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, result.Riders, 1)
	assert.Equal(t, active.ID, result.Riders[0].ID)
}

func TestDeleteRider(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), &CreateRiderRequest{Name: "Dana Driver"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, domainRider.ErrRiderNotFound)
}
