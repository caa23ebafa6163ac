package models

import (
	"time"

	"github.com/google/uuid"
)

// RiderModel represents the database model for delivery riders
type RiderModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `gorm:"size:100;not null"`
	Phone       string    `gorm:"size:30"`
	Email       string    `gorm:"size:255"`
	VehicleType string    `gorm:"size:50"`
	VehicleReg  string    `gorm:"size:50"`
	IsActive    bool      `gorm:"not null;default:true;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (RiderModel) TableName() string {
	return "riders"
}
