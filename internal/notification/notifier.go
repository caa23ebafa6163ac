package notification

import (
	"context"

	"shipment-tracker/internal/domain/shipment"
)

// Kind tags the lifecycle point a notification is sent for.
type Kind string

const (
	KindProcessing Kind = "processing"
	KindDelivered  Kind = "delivered"
)

// Notifier is invoked best-effort after the matching status transitions; a
// failing notifier never fails the primary operation.
type Notifier interface {
	Notify(ctx context.Context, s *shipment.Shipment, kind Kind) error
}

// Noop discards all notifications. Used when SMTP is not configured.
type Noop struct{}

func (Noop) Notify(ctx context.Context, s *shipment.Shipment, kind Kind) error {
	return nil
}
