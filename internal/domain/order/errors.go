package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrGatewayDown   = errors.New("commerce integration is not active")
)
