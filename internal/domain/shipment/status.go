package shipment

// Status represents the internal shipment status vocabulary
type Status string

const (
	StatusPending        Status = "pending"
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusInTransit      Status = "in_transit"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusFailed         Status = "failed"
	StatusCancelled      Status = "cancelled"
	StatusReturned       Status = "returned"
	StatusException      Status = "exception"
)

var statusLabels = map[Status]string{
	StatusPending:        "Pending",
	StatusProcessing:     "Processing",
	StatusShipped:        "Shipped",
	StatusInTransit:      "In Transit",
	StatusOutForDelivery: "Out for Delivery",
	StatusDelivered:      "Delivered",
	StatusFailed:         "Failed",
	StatusCancelled:      "Cancelled",
	StatusReturned:       "Returned",
	StatusException:      "Exception",
}

// Milestone statuses are visually emphasized in history displays. The flag
// carries no transition-validity meaning.
var milestoneStatuses = map[Status]bool{
	StatusShipped:        true,
	StatusOutForDelivery: true,
	StatusDelivered:      true,
	StatusFailed:         true,
	StatusCancelled:      true,
	StatusReturned:       true,
}

// Valid reports whether s is a member of the status taxonomy.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human-readable label for s, or the raw value when s is
// not part of the taxonomy.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsMilestone reports whether s belongs to the milestone subset.
func (s Status) IsMilestone() bool {
	return milestoneStatuses[s]
}

// AllStatuses returns every member of the taxonomy in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusProcessing,
		StatusShipped,
		StatusInTransit,
		StatusOutForDelivery,
		StatusDelivered,
		StatusFailed,
		StatusCancelled,
		StatusReturned,
		StatusException,
	}
}
