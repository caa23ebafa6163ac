package shipment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimateDelivery(t *testing.T) {
	// Monday 2026-03-02 plus five days is Saturday, shifted to Monday.
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	estimate := EstimateDelivery(monday)
	assert.Equal(t, time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC), estimate)
	assert.Equal(t, time.Monday, estimate.Weekday())

	// Wednesday plus five days is Monday already; no shift.
	wednesday := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	estimate = EstimateDelivery(wednesday)
	assert.Equal(t, time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC), estimate)

	// Tuesday plus five days is Sunday, shifted to Monday.
	tuesday := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	estimate = EstimateDelivery(tuesday)
	assert.Equal(t, time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC), estimate)
}

func TestEstimateDeliveryNeverLandsOnWeekend(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	for day := 0; day < 14; day++ {
		estimate := EstimateDelivery(start.AddDate(0, 0, day))
		assert.NotEqual(t, time.Saturday, estimate.Weekday())
		assert.NotEqual(t, time.Sunday, estimate.Weekday())
	}
}
