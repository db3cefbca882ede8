package models

import (
	"errors"
	"fmt"
)

var (
	ErrConflictData   = errors.New("data conflicts with existing data")
	ErrDataNotFound   = errors.New("data not found")
	ErrInvalidRequest = errors.New("name and amount are required")
	ErrMissingConfig  = errors.New("missing payment gateway configuration")
)

// GatewayError is returned when the uropay call fails or reports a non-success status.
type GatewayError struct {
	Detail string
}

func (e GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error: %s", e.Detail)
}

// NewGatewayError creates new GatewayError with detail
func NewGatewayError(detail string) GatewayError {
	return GatewayError{Detail: detail}
}
