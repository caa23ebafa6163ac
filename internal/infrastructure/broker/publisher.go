package broker

import (
	"encoding/json"
	"fmt"
	"time"

	"shipment-tracker/internal/domain/shipment"
	"shipment-tracker/pkg/mqtt"

	"github.com/google/uuid"
)

// EventPublisher pushes appended tracking events to the broker so the public
// tracking widget can subscribe for live updates. Publishing is best effort;
// callers log failures and move on.
type EventPublisher struct {
	client *mqtt.Client
}

func NewEventPublisher(client *mqtt.Client) *EventPublisher {
	return &EventPublisher{client: client}
}

type eventMessage struct {
	ShipmentID     uuid.UUID       `json:"shipment_id"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
	Status         shipment.Status `json:"status"`
	Description    string          `json:"description"`
	Location       *string         `json:"location,omitempty"`
	EventDate      time.Time       `json:"event_date"`
	IsMilestone    bool            `json:"is_milestone"`
}

func (p *EventPublisher) PublishEvent(s *shipment.Shipment, e *shipment.TrackingEvent) error {
	if p.client == nil || !p.client.IsConnected() {
		return nil
	}

	trackingNumber := ""
	if s.TrackingNumber != nil {
		trackingNumber = *s.TrackingNumber
	}
	if trackingNumber == "" {
		return nil // nothing to key the topic on yet
	}

	payload, err := json.Marshal(eventMessage{
		ShipmentID:     s.ID,
		TrackingNumber: trackingNumber,
		Status:         e.EventStatus,
		Description:    e.EventDescription,
		Location:       e.EventLocation,
		EventDate:      e.EventDate,
		IsMilestone:    e.IsMilestone,
	})
	if err != nil {
		return fmt.Errorf("failed to encode event message: %w", err)
	}

	topic := fmt.Sprintf("shipments/%s/events", trackingNumber)

	// Retained so late subscribers immediately see the latest event.
	return p.client.Publish(topic, 1, true, payload)
}
