package shipment

import "time"

// EstimateDelivery applies the fixed five-day delivery rule: add five
// calendar days, then nudge forward one day at a time while the result lands
// on a weekend.
func EstimateDelivery(from time.Time) time.Time {
	estimate := from.AddDate(0, 0, 5)
	for estimate.Weekday() == time.Saturday || estimate.Weekday() == time.Sunday {
		estimate = estimate.AddDate(0, 0, 1)
	}
	return estimate
}
