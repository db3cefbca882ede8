package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

//PENDING — order is created, payment has not been confirmed yet;
//SUCCESS — gateway confirmed the payment, terminal;
//FAILED — gateway reported a failure, may still be followed by SUCCESS.

// payment status
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusSuccess = "SUCCESS"
	PaymentStatusFailed  = "FAILED"
)

// Payment is payment order entity
type Payment struct {
	ID              uint64
	MerchantOrderID string
	GatewayOrderID  *string
	Amount          decimal.Decimal
	Status          string
	TransactionID   *string
	RawPayload      json.RawMessage
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
