package service

import (
	"encoding/json"

	"github.com/simplepay/paygate/internal/models"
)

// WebhookUpdate is the reconciliation input delivered by a gateway callback
type WebhookUpdate struct {
	Status         string
	TransactionID  string
	GatewayOrderID string
	RawPayload     json.RawMessage
}

// applyTransition applies the status transition rule to payment in place and
// reports whether it mutated. A payment that reached SUCCESS is never
// overwritten, so duplicate, delayed or forged callbacks cannot revert a
// completed payment. Statuses outside the known set are treated as garbled
// deliveries and ignored.
func applyTransition(payment *models.Payment, upd WebhookUpdate) bool {
	if payment.Status == models.PaymentStatusSuccess {
		return false
	}

	switch upd.Status {
	case models.PaymentStatusPending, models.PaymentStatusSuccess, models.PaymentStatusFailed:
	default:
		return false
	}

	payment.Status = upd.Status
	payment.TransactionID = optionalString(upd.TransactionID)
	payment.GatewayOrderID = optionalString(upd.GatewayOrderID)
	payment.RawPayload = upd.RawPayload

	return true
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
