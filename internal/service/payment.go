package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simplepay/paygate/config"
	"github.com/simplepay/paygate/internal/logger"
	"github.com/simplepay/paygate/internal/models"
	"github.com/simplepay/paygate/internal/upi"
	"github.com/simplepay/paygate/internal/uropay"
	"go.uber.org/zap"
)

const defaultCustomerEmail = "customer@example.com"

// PaymentRepository is interface for interacting with payment-related data
type PaymentRepository interface {
	// CreatePayment inserts new payment order to database
	CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	// GetPaymentByOrderID returns payment by merchant order id
	GetPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	// UpdatePayment updates payment status and webhook fields
	UpdatePayment(ctx context.Context, payment models.Payment) error
}

// GatewayClient submits order generation requests to the payment gateway
type GatewayClient interface {
	GenerateOrder(ctx context.Context, creds uropay.Credentials, order uropay.OrderRequest) (*uropay.Order, error)
}

// CreateOrderRequest is payer input for a new payment order
type CreateOrderRequest struct {
	Name   string `validate:"required"`
	Amount string `validate:"required"`
	Email  string
}

// OrderPage carries everything the payment page needs to render
type OrderPage struct {
	QRCode          string
	UPILink         string
	MerchantOrderID string
	Amount          string
}

// PaymentService implements PaymentService interface
type PaymentService struct {
	repo     PaymentRepository
	gateway  GatewayClient
	cfg      *config.Config
	validate *validator.Validate
}

// NewPaymentService creates new PaymentService instance
func NewPaymentService(repo PaymentRepository, gateway GatewayClient, cfg *config.Config) *PaymentService {
	return &PaymentService{
		repo:     repo,
		gateway:  gateway,
		cfg:      cfg,
		validate: validator.New(),
	}
}

// CreateOrder validates payer input, persists a PENDING payment and submits
// the order to the gateway. The payment record is created before the gateway
// is contacted, so a crash mid-flow never leaves an untracked charge attempt.
func (ps *PaymentService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderPage, error) {
	if err := ps.validate.Struct(req); err != nil {
		return nil, models.ErrInvalidRequest
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		return nil, models.ErrInvalidRequest
	}

	// gateway credentials come from the environment, checked per request
	if !ps.cfg.HasGatewayCredentials() {
		return nil, models.ErrMissingConfig
	}

	orderID := newOrderID()

	payment := &models.Payment{
		MerchantOrderID: orderID,
		Amount:          amount,
		Status:          models.PaymentStatusPending,
	}

	if _, err := ps.repo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	email := req.Email
	if email == "" {
		email = defaultCustomerEmail
	}

	// gateway expects the amount in paise
	paise := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	order, err := ps.gateway.GenerateOrder(ctx,
		uropay.Credentials{
			APIKey:    ps.cfg.UropayAPIKey,
			SecretKey: ps.cfg.UropaySecret,
		},
		uropay.OrderRequest{
			VPA:             ps.cfg.MerchantVPA,
			VPAName:         ps.cfg.MerchantName,
			Amount:          paise,
			MerchantOrderID: orderID,
			TransactionNote: "Payment for " + orderID,
			CustomerName:    req.Name,
			CustomerEmail:   email,
			Notes:           uropay.Notes{CustomID: uuid.NewString()},
		})
	if err != nil {
		// order stays PENDING, the webhook is the only resolution path
		logger.Log.Error("gateway order generation failed",
			zap.String("order", orderID), zap.Error(err))
		return nil, err
	}

	formatted := amount.StringFixed(2)

	link, err := upi.Canonical(order.UPIString, formatted)
	if err != nil {
		logger.Log.Debug("upi link is not parseable, patching amount in place",
			zap.String("order", orderID), zap.Error(err))
		link = upi.PatchAmount(order.UPIString, formatted)
	}

	return &OrderPage{
		QRCode:          order.QRCode,
		UPILink:         link,
		MerchantOrderID: orderID,
		Amount:          formatted,
	}, nil
}

// ApplyWebhook reconciles a gateway callback with the stored payment.
// Unknown orders are a no-op: the gateway may deliver callbacks for orders
// this store never knew.
func (ps *PaymentService) ApplyWebhook(ctx context.Context, orderID string, upd WebhookUpdate) error {
	payment, err := ps.repo.GetPaymentByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			logger.Log.Debug("webhook for unknown order", zap.String("order", orderID))
			return nil
		}
		return err
	}

	if !applyTransition(payment, upd) {
		logger.Log.Debug("webhook did not change payment",
			zap.String("order", orderID), zap.String("status", upd.Status))
		return nil
	}

	if err := ps.repo.UpdatePayment(ctx, *payment); err != nil {
		return err
	}

	logger.Log.Info("payment status updated",
		zap.String("order", orderID), zap.String("status", payment.Status))
	return nil
}

// PaymentStatus returns current order status. Unknown orders report PENDING
// so a client polling right after creation never sees a false terminal state.
func (ps *PaymentService) PaymentStatus(ctx context.Context, orderID string) (string, error) {
	payment, err := ps.repo.GetPaymentByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return models.PaymentStatusPending, nil
		}
		return "", err
	}

	return payment.Status, nil
}

// newOrderID generates a merchant order id from the current time and a small
// random disambiguator. Uniqueness is probabilistic; the unique index on the
// payments table catches the unlikely collision.
func newOrderID() string {
	return fmt.Sprintf("ORD-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
}
