package rider

import "errors"

var (
	ErrRiderNotFound = errors.New("rider not found")
)
