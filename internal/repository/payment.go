package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/simplepay/paygate/internal/models"
	"github.com/simplepay/paygate/internal/repository/postgres"
)

const pgErrUniqueViolationCode = "23505"

const (
	insertPaymentQuery = `
						INSERT INTO payments (merchant_order_id, amount, status)
						values ($1, $2, $3)
						RETURNING id, merchant_order_id, gateway_order_id, amount, status, transaction_id, raw_payload, created_at, updated_at
`
	selectPaymentByOrderIDQuery = `
						SELECT id, merchant_order_id, gateway_order_id, amount, status, transaction_id, raw_payload, created_at, updated_at FROM payments
						WHERE merchant_order_id = $1
`
	updatePaymentQuery = `
						UPDATE payments
						SET status = $1, transaction_id = $2, gateway_order_id = $3, raw_payload = $4, updated_at = now()
						WHERE merchant_order_id = $5
`
)

// PaymentRepository implements PaymentRepository interface
type PaymentRepository struct {
	db *postgres.DB
}

// NewPaymentRepository creates new PaymentRepository instance
func NewPaymentRepository(db *postgres.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreatePayment inserts new payment order to database
func (pr *PaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	err := pr.db.QueryRow(ctx, insertPaymentQuery, payment.MerchantOrderID, payment.Amount, payment.Status).
		Scan(&payment.ID, &payment.MerchantOrderID, &payment.GatewayOrderID, &payment.Amount,
			&payment.Status, &payment.TransactionID, &payment.RawPayload, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		if errCode := pr.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return payment, nil
}

// GetPaymentByOrderID returns payment by merchant order id
func (pr *PaymentRepository) GetPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	payment := models.Payment{}
	err := pr.db.QueryRow(ctx, selectPaymentByOrderIDQuery, orderID).
		Scan(&payment.ID, &payment.MerchantOrderID, &payment.GatewayOrderID, &payment.Amount,
			&payment.Status, &payment.TransactionID, &payment.RawPayload, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &payment, nil
}

// UpdatePayment updates payment status and webhook fields
func (pr *PaymentRepository) UpdatePayment(ctx context.Context, payment models.Payment) error {
	cmd, err := pr.db.Exec(ctx, updatePaymentQuery, payment.Status, payment.TransactionID,
		payment.GatewayOrderID, payment.RawPayload, payment.MerchantOrderID)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
