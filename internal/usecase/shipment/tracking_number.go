package shipment

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	domainShipment "shipment-tracker/internal/domain/shipment"
)

// NumberKind selects the tracking number prefix.
type NumberKind string

const (
	NumberAuto   NumberKind = "auto"   // FSA: generated during order import
	NumberManual NumberKind = "manual" // FSM: minted for manually created shipments
)

const trackingSuffixLen = 8

const trackingCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// TrackingNumberGenerator mints collision-checked tracking numbers. The
// check-then-use sequence is racy between concurrent requests; the unique
// index on shipments.tracking_number is the backstop and a violation there
// surfaces to the caller as a duplicate error.
type TrackingNumberGenerator struct {
	repo domainShipment.Repository
}

func NewTrackingNumberGenerator(repo domainShipment.Repository) *TrackingNumberGenerator {
	return &TrackingNumberGenerator{repo: repo}
}

// Generate produces a tracking number that does not exist in storage at
// generation time, re-rolling the random suffix on collision. With 36^8
// suffixes the loop terminates almost immediately in practice.
func (g *TrackingNumberGenerator) Generate(ctx context.Context, kind NumberKind) (string, error) {
	for {
		suffix, err := randomSuffix(trackingSuffixLen)
		if err != nil {
			return "", err
		}

		candidate := FormatTrackingNumber(kind, time.Now(), suffix)

		exists, err := g.repo.TrackingNumberExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}

// FormatTrackingNumber assembles <prefix><YYYYMMDD><suffix>.
func FormatTrackingNumber(kind NumberKind, t time.Time, suffix string) string {
	prefix := "FSA"
	if kind == NumberManual {
		prefix = "FSM"
	}
	return fmt.Sprintf("%s%s%s", prefix, t.Format("20060102"), suffix)
}

func randomSuffix(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	out := make([]byte, n)
	for i, b := range buf {
		out[i] = trackingCharset[int(b)%len(trackingCharset)]
	}

	return string(out), nil
}
