package shipment

import (
	"time"

	"github.com/google/uuid"
)

// Carrier represents the delivery carrier
type Carrier string

const (
	CarrierFedEx  Carrier = "fedex"
	CarrierUPS    Carrier = "ups"
	CarrierUSPS   Carrier = "usps"
	CarrierDHL    Carrier = "dhl"
	CarrierCustom Carrier = "custom"
)

// CarrierOrCustom normalizes a raw carrier value, falling back to custom.
func CarrierOrCustom(raw string) Carrier {
	switch c := Carrier(raw); c {
	case CarrierFedEx, CarrierUPS, CarrierUSPS, CarrierDHL:
		return c
	default:
		return CarrierCustom
	}
}

// Address is a snapshot taken from the order at creation time, not a live
// reference. The shipment stays self-contained if the order later changes.
type Address struct {
	Name       string `json:"name,omitempty"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// PackageItem is one line item snapshot inside PackageInfo.
type PackageItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Weight   float64 `json:"weight"`
}

// PackageInfo snapshots the order's line items plus aggregate counts.
type PackageInfo struct {
	Items         []PackageItem `json:"items"`
	TotalItems    int           `json:"total_items"`
	TotalQuantity int           `json:"total_quantity"`
}

// Shipment represents the trackable record for physical fulfillment of one
// order. At most one shipment exists per (OrderID, OrderSource) pair.
type Shipment struct {
	ID uuid.UUID

	OrderID     int64
	OrderSource string

	TrackingNumber *string
	CurrentStatus  Status

	Carrier        Carrier
	CarrierService string
	TrackingURL    string

	ShippingAddress *Address
	DeliveryAddress *Address
	PackageInfo     *PackageInfo

	EstimatedDelivery *time.Time
	ShippedAt         *time.Time
	DeliveredAt       *time.Time

	WeightTotal  float64
	ShippingCost int64 // minor currency units
	Currency     string

	RiderID *uuid.UUID

	Meta map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplyStatus transitions the shipment to newStatus, applying the timestamp
// side effects, and reports whether the status actually changed. Validation
// failure leaves the shipment untouched. This is the only legitimate way to
// change CurrentStatus.
func (s *Shipment) ApplyStatus(newStatus Status, now time.Time) (bool, error) {
	if !newStatus.Valid() {
		return false, ErrInvalidStatus
	}

	oldStatus := s.CurrentStatus
	s.CurrentStatus = newStatus

	if newStatus == StatusShipped && s.ShippedAt == nil {
		shippedAt := now
		s.ShippedAt = &shippedAt
	}
	if newStatus == StatusDelivered && s.DeliveredAt == nil {
		deliveredAt := now
		s.DeliveredAt = &deliveredAt
	}
	if oldStatus == StatusDelivered && newStatus != StatusDelivered {
		s.DeliveredAt = nil
	}

	s.UpdatedAt = now

	return oldStatus != newStatus, nil
}

// TrackingEvent is one immutable, timestamped entry in a shipment's status
// history. Events are only ever created and cascade-deleted with their
// shipment; there is no update path.
type TrackingEvent struct {
	ID         uuid.UUID
	ShipmentID uuid.UUID

	EventStatus      Status
	EventDescription string
	EventLocation    *string
	EventDate        time.Time

	CarrierData map[string]any
	IsMilestone bool

	CreatedAt time.Time
}

// EventData carries the optional fields of a tracking event. Zero values
// defer to the taxonomy defaults in NewTrackingEvent.
type EventData struct {
	Description string
	Location    *string
	Date        *time.Time
	IsMilestone *bool
	CarrierData map[string]any
}

// NewTrackingEvent builds an event for status. The description falls back to
// the status label, the date to now, and the milestone flag to the taxonomy's.
func NewTrackingEvent(shipmentID uuid.UUID, status Status, data EventData, now time.Time) *TrackingEvent {
	description := data.Description
	if description == "" {
		description = status.Label()
	}

	eventDate := now
	if data.Date != nil {
		eventDate = *data.Date
	}

	isMilestone := status.IsMilestone()
	if data.IsMilestone != nil {
		isMilestone = *data.IsMilestone
	}

	return &TrackingEvent{
		ShipmentID:       shipmentID,
		EventStatus:      status,
		EventDescription: description,
		EventLocation:    data.Location,
		EventDate:        eventDate,
		CarrierData:      data.CarrierData,
		IsMilestone:      isMilestone,
		CreatedAt:        now,
	}
}
