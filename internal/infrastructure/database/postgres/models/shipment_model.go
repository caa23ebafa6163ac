package models

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentModel represents the database model for Shipments
type ShipmentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID     int64     `gorm:"not null;uniqueIndex:idx_shipments_order,priority:1"`
	OrderSource string    `gorm:"size:50;not null;uniqueIndex:idx_shipments_order,priority:2"`

	TrackingNumber *string `gorm:"size:64;uniqueIndex"`
	CurrentStatus  string  `gorm:"size:32;not null;default:'pending';index"`

	Carrier        string `gorm:"size:32;not null;default:'custom'"`
	CarrierService string `gorm:"size:100"`
	TrackingURL    string `gorm:"size:255"`

	ShippingAddress JSONB `gorm:"type:jsonb"`
	DeliveryAddress JSONB `gorm:"type:jsonb"`
	PackageInfo     JSONB `gorm:"type:jsonb"`

	EstimatedDelivery *time.Time `gorm:"type:date"`
	ShippedAt         *time.Time `gorm:"type:timestamptz"`
	DeliveredAt       *time.Time `gorm:"type:timestamptz"`

	WeightTotal  float64 `gorm:"type:decimal(10,3);not null;default:0"`
	ShippingCost int64   `gorm:"not null;default:0"`
	Currency     string  `gorm:"size:3;not null;default:'USD'"`

	RiderID *uuid.UUID `gorm:"type:uuid;index"`

	Meta JSONB `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`

	// Relations
	Rider  *RiderModel          `gorm:"foreignKey:RiderID"`
	Events []TrackingEventModel `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentModel) TableName() string {
	return "shipments"
}

// TrackingEventModel represents the database model for tracking events.
// Rows are append-only; there is no update path.
type TrackingEventModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`

	EventStatus      string    `gorm:"size:32;not null"`
	EventDescription string    `gorm:"type:text;not null"`
	EventLocation    *string   `gorm:"size:255"`
	EventDate        time.Time `gorm:"type:timestamptz;not null;index"`

	CarrierData JSONB `gorm:"type:jsonb"`
	IsMilestone bool  `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`

	Shipment *ShipmentModel `gorm:"foreignKey:ShipmentID"`
}

func (TrackingEventModel) TableName() string {
	return "shipment_tracking_events"
}
