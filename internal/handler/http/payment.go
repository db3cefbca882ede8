package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/simplepay/paygate/internal/models"
	"github.com/simplepay/paygate/internal/service"
)

// PaymentService is interface for payment-related operations
type PaymentService interface {
	// CreateOrder validates payer input, persists a PENDING payment and
	// submits the order to the gateway
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*service.OrderPage, error)
	// ApplyWebhook reconciles a gateway callback with the stored payment
	ApplyWebhook(ctx context.Context, orderID string, upd service.WebhookUpdate) error
	// PaymentStatus returns current order status
	PaymentStatus(ctx context.Context, orderID string) (string, error)
}

// PaymentHandler represents HTTP handler for payment-related requests
type PaymentHandler struct {
	svc        PaymentService
	production bool
}

// NewPaymentHandler creates new PaymentHandler instance
func NewPaymentHandler(svc PaymentService, production bool) *PaymentHandler {
	return &PaymentHandler{
		svc:        svc,
		production: production,
	}
}

// Index renders the payer input form
func (ph *PaymentHandler) Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, "index.html", nil)
	}
}

// CreatePayment creates new payment order and renders the payment page
// 200 — заказ создан, страница оплаты отрисована;
// 400 — не указаны имя или сумма;
// 500 — нет конфигурации шлюза или шлюз вернул ошибку.
func (ph *PaymentHandler) CreatePayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		req := service.CreateOrderRequest{
			Name:   r.FormValue("name"),
			Amount: r.FormValue("amount"),
			Email:  r.FormValue("email"),
		}

		page, err := ph.svc.CreateOrder(r.Context(), req)
		if err != nil {
			var gwErr models.GatewayError
			switch {
			case errors.Is(err, models.ErrInvalidRequest):
				http.Error(w, "Name and Amount are required", http.StatusBadRequest)
			case errors.Is(err, models.ErrMissingConfig):
				http.Error(w, "Missing payment gateway configuration", http.StatusInternalServerError)
			case errors.As(err, &gwErr):
				msg := "Failed to create payment"
				if !ph.production {
					msg += ": " + gwErr.Detail
				}
				http.Error(w, msg, http.StatusInternalServerError)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		renderPage(w, "payment.html", page)
	}
}

type statusResponse struct {
	Status string `json:"status"`
}

// PaymentStatus reports current order status for client-side polling.
// Unknown order ids report PENDING, never an error.
func (ph *PaymentHandler) PaymentStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := r.URL.Query().Get("orderId")

		status, err := ph.svc.PaymentStatus(r.Context(), orderID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(statusResponse{Status: status}); err != nil {
			return
		}
	}
}

type resultPage struct {
	OrderID string
}

// PaymentSuccess renders the success result page
func (ph *PaymentHandler) PaymentSuccess() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, "success.html", resultPage{OrderID: r.URL.Query().Get("orderId")})
	}
}

// PaymentCancel renders the failure result page
func (ph *PaymentHandler) PaymentCancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, "cancel.html", resultPage{OrderID: r.URL.Query().Get("orderId")})
	}
}

// NotFound is the fallback for unknown routes
func NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Page not found", http.StatusNotFound)
	}
}
