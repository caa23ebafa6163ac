package order

import (
	"context"

	"shipment-tracker/internal/domain/shipment"
)

// Vocabulary of the commerce system. The gateway adapter translates whatever
// the remote API speaks into these values.
const (
	FulfillmentPhysical = "physical"

	PaymentPaid          = "paid"
	PaymentPartiallyPaid = "partially_paid"

	StatusProcessing = "processing"
	StatusCompleted  = "completed"
)

// Item is one order line item.
type Item struct {
	Name     string
	Quantity int
	Weight   float64
}

// Order is a read-mostly snapshot of a commerce order. The only field the
// tracker ever writes back is the shipping status, via the gateway.
type Order struct {
	ID              int64
	FulfillmentType string
	PaymentStatus   string
	Status          string
	ShippingStatus  string
	ShippingAddress *shipment.Address
	CustomerID      int64
	CustomerEmail   string
	ShippingTotal   int64
	Currency        string
	Note            string
	Items           []Item
}

// Gateway is the narrow port to the commerce system. Implementations must
// report unavailability through Available rather than failing lookups with
// opaque errors.
type Gateway interface {
	// Available reports whether the commerce integration is configured and
	// reachable enough to serve requests.
	Available() bool
	// Source identifies the commerce system, stored on shipments it spawns.
	Source() string
	GetOrder(ctx context.Context, orderID int64) (*Order, error)
	// ListImportable returns paid/physical orders that are candidates for
	// shipment creation. Eligibility is still re-checked per order.
	ListImportable(ctx context.Context, limit int) ([]*Order, error)
	UpdateShippingStatus(ctx context.Context, orderID int64, shippingStatus string) error
}
