package rider

import (
	"time"

	domainRider "shipment-tracker/internal/domain/rider"

	"github.com/google/uuid"
)

type CreateRiderRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
	Email       string `json:"email" validate:"omitempty,email,max=255"`
	VehicleType string `json:"vehicle_type" validate:"omitempty,max=50"`
	VehicleReg  string `json:"vehicle_reg" validate:"omitempty,max=50"`
}

type UpdateRiderRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Phone       *string `json:"phone" validate:"omitempty,max=32"`
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
	VehicleType *string `json:"vehicle_type" validate:"omitempty,max=50"`
	VehicleReg  *string `json:"vehicle_reg" validate:"omitempty,max=50"`
	IsActive    *bool   `json:"is_active"`
}

type RiderFilterRequest struct {
	ActiveOnly bool `form:"active_only"`
	Page       int  `form:"page" validate:"omitempty,min=1"`
	PageSize   int  `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type RiderResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	VehicleType string    `json:"vehicle_type,omitempty"`
	VehicleReg  string    `json:"vehicle_reg,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RiderListResponse struct {
	Riders   []RiderResponse `json:"riders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

func ToRiderResponse(r *domainRider.Rider) *RiderResponse {
	return &RiderResponse{
		ID:          r.ID,
		Name:        r.Name,
		Phone:       r.Phone,
		Email:       r.Email,
		VehicleType: r.VehicleType,
		VehicleReg:  r.VehicleReg,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
