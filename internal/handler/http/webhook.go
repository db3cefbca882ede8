package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/simplepay/paygate/internal/logger"
	"github.com/simplepay/paygate/internal/service"
	"go.uber.org/zap"
)

type webhookRequest struct {
	MerchantOrderID string `json:"merchantOrderId"`
	Status          string `json:"status"`
	TxnID           string `json:"txnId"`
	UroPayOrderID   string `json:"uroPayOrderId"`
}

// Webhook receives asynchronous payment outcome from the gateway.
// It acknowledges every delivery: the gateway retries aggressively on
// anything but a 200, and a garbled body is not worth a retry storm.
func (ph *PaymentHandler) Webhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gateway := chi.URLParam(r, "gateway")

		body, err := io.ReadAll(r.Body)
		if err == nil {
			defer r.Body.Close()

			req := webhookRequest{}
			if err := json.Unmarshal(body, &req); err != nil {
				logger.Log.Debug("unparseable webhook body", zap.String("gateway", gateway))
			} else {
				upd := service.WebhookUpdate{
					Status:         req.Status,
					TransactionID:  req.TxnID,
					GatewayOrderID: req.UroPayOrderID,
					RawPayload:     body,
				}
				if err := ph.svc.ApplyWebhook(r.Context(), req.MerchantOrderID, upd); err != nil {
					logger.Log.Error("webhook reconciliation failed",
						zap.String("gateway", gateway),
						zap.String("order", req.MerchantOrderID),
						zap.Error(err))
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true}`))
	}
}
