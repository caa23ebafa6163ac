package shipment

// TransitionPolicy decides whether a status transition is legal. The default
// policy allows any status to follow any other: operators use free transitions
// for manual corrections (e.g. delivered back to pending), so legality is a
// pluggable policy rather than a hard-coded graph.
type TransitionPolicy interface {
	Validate(from, to Status) error
}

// PermissivePolicy accepts every transition between valid statuses.
type PermissivePolicy struct{}

func (PermissivePolicy) Validate(from, to Status) error {
	if !to.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
