package shipment

// Translation between the internal status vocabulary and the commerce
// system's order vocabularies. The three functions are independently defined
// lookup tables and do not round-trip; keep them separate.

var fromOrderShippingStatus = map[string]Status{
	"unshipped":   StatusPending,
	"shipped":     StatusShipped,
	"delivered":   StatusDelivered,
	"unshippable": StatusCancelled,
}

// FromOrderShippingStatus maps the order's shipping status to an internal
// status. Unrecognized values fall back to pending.
func FromOrderShippingStatus(shippingStatus string) Status {
	if status, ok := fromOrderShippingStatus[shippingStatus]; ok {
		return status
	}
	return StatusPending
}

var fromOrderStatus = map[string]Status{
	"pending":    StatusPending,
	"processing": StatusProcessing,
	"completed":  StatusShipped,
	"cancelled":  StatusCancelled,
	"refunded":   StatusCancelled,
	"failed":     StatusFailed,
}

// FromOrderStatus maps the order's overall status to an internal status for
// ongoing sync. The second return is false for unrecognized values, which
// signals "do not change".
func FromOrderStatus(orderStatus string) (Status, bool) {
	status, ok := fromOrderStatus[orderStatus]
	return status, ok
}

var toOrderShippingStatus = map[Status]string{
	StatusPending:        "unshipped",
	StatusProcessing:     "unshipped",
	StatusShipped:        "shipped",
	StatusInTransit:      "shipped",
	StatusOutForDelivery: "shipped",
	StatusDelivered:      "delivered",
	StatusFailed:         "unshippable",
	StatusCancelled:      "unshippable",
	StatusReturned:       "unshippable",
	StatusException:      "unshippable",
}

// ToOrderShippingStatus maps an internal status to the order's shipping
// status vocabulary for sync-back. Total over the taxonomy; values outside
// it map to unshipped.
func ToOrderShippingStatus(status Status) string {
	if external, ok := toOrderShippingStatus[status]; ok {
		return external
	}
	return "unshipped"
}
