package shipment

import "errors"

var (
	ErrShipmentNotFound      = errors.New("shipment not found")
	ErrShipmentAlreadyExists = errors.New("shipment already exists for this order")
	ErrInvalidStatus         = errors.New("invalid shipment status")
	ErrDuplicateTracking     = errors.New("tracking number already in use")
	ErrOrderNotEligible      = errors.New("order is not eligible for shipment")
	ErrMissingAddress        = errors.New("order has no shipping address")
)
