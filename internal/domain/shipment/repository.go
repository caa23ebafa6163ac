package shipment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for shipments and their
// tracking events.
type Repository interface {
	Create(ctx context.Context, shipment *Shipment) error
	GetByID(ctx context.Context, shipmentID uuid.UUID) (*Shipment, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*Shipment, error)
	GetByOrder(ctx context.Context, orderID int64, orderSource string) (*Shipment, error)
	Update(ctx context.Context, shipment *Shipment) error
	Delete(ctx context.Context, shipmentID uuid.UUID) error
	List(ctx context.Context, filter *Filter) ([]*Shipment, int64, error)
	TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error)
	GetStatistics(ctx context.Context) (*Statistics, error)

	CreateEvent(ctx context.Context, event *TrackingEvent) error
	ListEvents(ctx context.Context, shipmentID uuid.UUID) ([]*TrackingEvent, error)
}

// Filter represents filtering options for listing shipments
type Filter struct {
	Status      *Status
	Carrier     *Carrier
	RiderID     *uuid.UUID
	OrderSource *string

	CreatedAfter  *time.Time
	CreatedBefore *time.Time

	Search string

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Statistics represents aggregate shipment counts for the dashboard
type Statistics struct {
	TotalShipments int
	ByStatus       map[string]int
	ActiveCount    int
	DeliveredToday int
}
