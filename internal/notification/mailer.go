package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"shipment-tracker/internal/config"
	"shipment-tracker/internal/domain/shipment"
)

// Mailer sends customer notifications over SMTP. The recipient address comes
// from the shipment meta (snapshotted from the order at import time).
type Mailer struct {
	cfg *config.SMTPConfig
}

func NewMailer(cfg *config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Notify(ctx context.Context, s *shipment.Shipment, kind Kind) error {
	recipient := s.Meta["customer_email"]
	if recipient == "" {
		return nil // nothing to send to
	}

	subject, body := m.compose(s, kind)

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + recipient,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send %s notification: %w", kind, err)
	}

	return nil
}

func (m *Mailer) compose(s *shipment.Shipment, kind Kind) (string, string) {
	trackingNumber := ""
	if s.TrackingNumber != nil {
		trackingNumber = *s.TrackingNumber
	}

	switch kind {
	case KindDelivered:
		return fmt.Sprintf("Your order #%d has been delivered", s.OrderID),
			fmt.Sprintf("Good news! Your shipment %s for order #%d has been delivered.", trackingNumber, s.OrderID)
	default:
		body := fmt.Sprintf("Your shipment for order #%d is being prepared.", s.OrderID)
		if trackingNumber != "" {
			body += fmt.Sprintf(" Track it with number %s.", trackingNumber)
		}
		if s.EstimatedDelivery != nil {
			body += fmt.Sprintf(" Estimated delivery: %s.", s.EstimatedDelivery.Format("Mon, 02 Jan 2006"))
		}
		return fmt.Sprintf("Your order #%d is being processed", s.OrderID), body
	}
}
