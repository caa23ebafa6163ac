package shipment

import (
	"time"

	domainShipment "shipment-tracker/internal/domain/shipment"

	"github.com/google/uuid"
)

// Request DTOs

type CreateShipmentRequest struct {
	OrderID     int64  `json:"order_id" validate:"required,min=1"`
	OrderSource string `json:"order_source" validate:"omitempty,max=50"`

	TrackingNumber *string `json:"tracking_number" validate:"omitempty,min=4,max=64"`
	Carrier        string  `json:"carrier" validate:"omitempty,max=32"`
	CarrierService string  `json:"carrier_service" validate:"omitempty,max=100"`
	TrackingURL    string  `json:"tracking_url" validate:"omitempty,url,max=255"`

	ShippingAddress *domainShipment.Address `json:"shipping_address"`
	DeliveryAddress *domainShipment.Address `json:"delivery_address"`

	Items []PackageItemRequest `json:"items" validate:"omitempty,dive"`

	EstimatedDelivery *time.Time `json:"estimated_delivery"`

	ShippingCost int64  `json:"shipping_cost" validate:"omitempty,min=0"`
	Currency     string `json:"currency" validate:"omitempty,len=3"`

	RiderID *uuid.UUID `json:"rider_id"`

	Meta map[string]string `json:"meta"`
}

type PackageItemRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	Weight   float64 `json:"weight" validate:"omitempty,min=0"`
}

// UpdateShipmentRequest edits descriptive fields only. Status never changes
// through this path; use UpdateStatus so the timestamp and event side effects
// apply.
type UpdateShipmentRequest struct {
	TrackingNumber *string `json:"tracking_number" validate:"omitempty,min=4,max=64"`
	Carrier        *string `json:"carrier" validate:"omitempty,max=32"`
	CarrierService *string `json:"carrier_service" validate:"omitempty,max=100"`
	TrackingURL    *string `json:"tracking_url" validate:"omitempty,url,max=255"`

	DeliveryAddress *domainShipment.Address `json:"delivery_address"`

	EstimatedDelivery *time.Time `json:"estimated_delivery"`

	ShippingCost *int64  `json:"shipping_cost" validate:"omitempty,min=0"`
	Currency     *string `json:"currency" validate:"omitempty,len=3"`

	RiderID *uuid.UUID `json:"rider_id"`

	Meta map[string]string `json:"meta"`
}

type UpdateStatusRequest struct {
	Status      string     `json:"status" validate:"required"`
	Description string     `json:"description" validate:"omitempty,max=500"`
	Location    *string    `json:"location" validate:"omitempty,max=255"`
	Date        *time.Time `json:"date"`
	IsMilestone *bool      `json:"is_milestone"`

	// SyncToOrder asks the handler to push the resulting status back to the
	// order. Off by default so status edits cannot loop with the sync job.
	SyncToOrder bool `json:"sync_to_order"`
}

// CreateEventRequest records a manual annotation in the ledger. Always a new
// row; events are immutable facts.
type CreateEventRequest struct {
	Status      string     `json:"status" validate:"required"`
	Description string     `json:"description" validate:"omitempty,max=500"`
	Location    *string    `json:"location" validate:"omitempty,max=255"`
	Date        *time.Time `json:"date"`
	IsMilestone *bool      `json:"is_milestone"`
}

type ShipmentFilterRequest struct {
	Status      string `form:"status"`
	Carrier     string `form:"carrier"`
	RiderID     string `form:"rider_id"`
	OrderSource string `form:"order_source"`

	CreatedAfter  *time.Time `form:"created_after"`
	CreatedBefore *time.Time `form:"created_before"`

	Search string `form:"search"`

	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" validate:"omitempty,oneof=created_at updated_at estimated_delivery shipped_at delivered_at"`
	SortOrder string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

type BulkImportRequest struct {
	Limit int `json:"limit" validate:"omitempty,min=1,max=500"`
}

// Response DTOs

type ShipmentResponse struct {
	ID          uuid.UUID `json:"id"`
	OrderID     int64     `json:"order_id"`
	OrderSource string    `json:"order_source"`

	TrackingNumber *string                `json:"tracking_number"`
	CurrentStatus  domainShipment.Status  `json:"current_status"`
	StatusLabel    string                 `json:"status_label"`
	Carrier        domainShipment.Carrier `json:"carrier"`
	CarrierService string                 `json:"carrier_service,omitempty"`
	TrackingURL    string                 `json:"tracking_url,omitempty"`

	ShippingAddress *domainShipment.Address     `json:"shipping_address,omitempty"`
	DeliveryAddress *domainShipment.Address     `json:"delivery_address,omitempty"`
	PackageInfo     *domainShipment.PackageInfo `json:"package_info,omitempty"`

	EstimatedDelivery *time.Time `json:"estimated_delivery"`
	ShippedAt         *time.Time `json:"shipped_at"`
	DeliveredAt       *time.Time `json:"delivered_at"`

	WeightTotal  float64 `json:"weight_total"`
	ShippingCost int64   `json:"shipping_cost"`
	Currency     string  `json:"currency"`

	RiderID *uuid.UUID `json:"rider_id,omitempty"`

	Meta map[string]string `json:"meta,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TrackingEventResponse struct {
	ID          uuid.UUID             `json:"id"`
	Status      domainShipment.Status `json:"status"`
	Description string                `json:"description"`
	Location    *string               `json:"location"`
	EventDate   time.Time             `json:"event_date"`
	IsMilestone bool                  `json:"is_milestone"`
	CreatedAt   time.Time             `json:"created_at"`
}

type ShipmentDetailResponse struct {
	*ShipmentResponse
	Events []TrackingEventResponse `json:"events"`
}

type ShipmentListResponse struct {
	Shipments  []ShipmentResponse `json:"shipments"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// TrackResponse is the public tracking-widget payload. It deliberately leaks
// no addresses or cost data.
type TrackResponse struct {
	TrackingNumber    string                  `json:"tracking_number"`
	CurrentStatus     domainShipment.Status   `json:"current_status"`
	StatusLabel       string                  `json:"status_label"`
	Carrier           domainShipment.Carrier  `json:"carrier"`
	EstimatedDelivery *time.Time              `json:"estimated_delivery"`
	ShippedAt         *time.Time              `json:"shipped_at"`
	DeliveredAt       *time.Time              `json:"delivered_at"`
	RiderName         string                  `json:"rider_name,omitempty"`
	Events            []TrackingEventResponse `json:"events"`
}

type StatisticsResponse struct {
	TotalShipments int            `json:"total_shipments"`
	ByStatus       map[string]int `json:"by_status"`
	ActiveCount    int            `json:"active_count"`
	DeliveredToday int            `json:"delivered_today"`
}

type ImportResult struct {
	OrderID        int64   `json:"order_id"`
	Outcome        string  `json:"outcome"` // created | skipped
	Reason         string  `json:"reason,omitempty"`
	ShipmentID     *string `json:"shipment_id,omitempty"`
	TrackingNumber *string `json:"tracking_number,omitempty"`
}

type BulkImportResponse struct {
	Created int            `json:"created"`
	Skipped int            `json:"skipped"`
	Results []ImportResult `json:"results"`
}

func ToShipmentResponse(s *domainShipment.Shipment) *ShipmentResponse {
	return &ShipmentResponse{
		ID:                s.ID,
		OrderID:           s.OrderID,
		OrderSource:       s.OrderSource,
		TrackingNumber:    s.TrackingNumber,
		CurrentStatus:     s.CurrentStatus,
		StatusLabel:       s.CurrentStatus.Label(),
		Carrier:           s.Carrier,
		CarrierService:    s.CarrierService,
		TrackingURL:       s.TrackingURL,
		ShippingAddress:   s.ShippingAddress,
		DeliveryAddress:   s.DeliveryAddress,
		PackageInfo:       s.PackageInfo,
		EstimatedDelivery: s.EstimatedDelivery,
		ShippedAt:         s.ShippedAt,
		DeliveredAt:       s.DeliveredAt,
		WeightTotal:       s.WeightTotal,
		ShippingCost:      s.ShippingCost,
		Currency:          s.Currency,
		RiderID:           s.RiderID,
		Meta:              s.Meta,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func ToEventResponse(e *domainShipment.TrackingEvent) TrackingEventResponse {
	return TrackingEventResponse{
		ID:          e.ID,
		Status:      e.EventStatus,
		Description: e.EventDescription,
		Location:    e.EventLocation,
		EventDate:   e.EventDate,
		IsMilestone: e.IsMilestone,
		CreatedAt:   e.CreatedAt,
	}
}

func ToEventResponses(events []*domainShipment.TrackingEvent) []TrackingEventResponse {
	responses := make([]TrackingEventResponse, len(events))
	for i, e := range events {
		responses[i] = ToEventResponse(e)
	}
	return responses
}

func (f *ShipmentFilterRequest) ToDomainFilter() *domainShipment.Filter {
	filter := &domainShipment.Filter{
		CreatedAfter:  f.CreatedAfter,
		CreatedBefore: f.CreatedBefore,
		Search:        f.Search,
		Page:          f.Page,
		PageSize:      f.PageSize,
		SortBy:        f.SortBy,
		SortOrder:     f.SortOrder,
	}

	if f.Status != "" {
		status := domainShipment.Status(f.Status)
		filter.Status = &status
	}
	if f.Carrier != "" {
		carrier := domainShipment.Carrier(f.Carrier)
		filter.Carrier = &carrier
	}
	if f.RiderID != "" {
		if riderID, err := uuid.Parse(f.RiderID); err == nil {
			filter.RiderID = &riderID
		}
	}
	if f.OrderSource != "" {
		source := f.OrderSource
		filter.OrderSource = &source
	}

	return filter
}
