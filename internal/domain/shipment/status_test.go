package shipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, s.Valid(), "status %q should be valid", s)
	}

	assert.False(t, Status("bogus_status").Valid())
	assert.False(t, Status("").Valid())
	assert.False(t, Status("Delivered").Valid(), "taxonomy values are lowercase")
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Out for Delivery", StatusOutForDelivery.Label())
	assert.Equal(t, "In Transit", StatusInTransit.Label())
	assert.Equal(t, "Pending", StatusPending.Label())

	// Unknown values fall back to the raw string.
	assert.Equal(t, "bogus_status", Status("bogus_status").Label())
}

func TestStatusMilestoneSubset(t *testing.T) {
	milestones := map[Status]bool{
		StatusShipped:        true,
		StatusOutForDelivery: true,
		StatusDelivered:      true,
		StatusFailed:         true,
		StatusCancelled:      true,
		StatusReturned:       true,
	}

	for _, s := range AllStatuses() {
		assert.Equal(t, milestones[s], s.IsMilestone(), "milestone flag for %q", s)
	}
}

func TestAllStatusesComplete(t *testing.T) {
	statuses := AllStatuses()
	assert.Len(t, statuses, 10)

	seen := make(map[Status]bool)
	for _, s := range statuses {
		assert.False(t, seen[s], "duplicate status %q", s)
		seen[s] = true
	}
}
