package rider

import (
	"time"

	"github.com/google/uuid"
)

// Rider is a delivery agent. Shipments reference riders weakly for display;
// riders carry no state machine.
type Rider struct {
	ID uuid.UUID

	Name        string
	Phone       string
	Email       string
	VehicleType string
	VehicleReg  string

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
