package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/simplepay/paygate/internal/handler/http/mocks"
	"github.com/simplepay/paygate/internal/models"
	"github.com/simplepay/paygate/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentHandler_CreatePayment(t *testing.T) {
	tests := []struct {
		name           string
		form           url.Values
		production     bool
		setup          func(t *testing.T) *mocks.MockPaymentService
		wantStatusCode int
		wantInBody     []string
		wantNotInBody  []string
	}{
		{
			name: "valid_request_renders_payment_page",
			form: url.Values{
				"name":   {"Asha"},
				"amount": {"150.00"},
			},
			setup: func(t *testing.T) *mocks.MockPaymentService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().CreateOrder(gomock.Any(), service.CreateOrderRequest{
					Name:   "Asha",
					Amount: "150.00",
				}).Return(&service.OrderPage{
					QRCode:          "data:image/png;base64,AAAA",
					UPILink:         "upi://pay?pa=merchant@upi&pn=SimplePay+Merchant&am=150.00&cu=INR&tn=Payment",
					MerchantOrderID: "ORD-1756450000000-42",
					Amount:          "150.00",
				}, nil).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantInBody: []string{
				"ORD-1756450000000-42",
				"am=150.00",
				"cu=INR",
				"data:image/png;base64,AAAA",
			},
		},
		{
			name: "missing_amount_returns_400",
			form: url.Values{
				"name": {"Asha"},
			},
			setup: func(t *testing.T) *mocks.MockPaymentService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					Return(nil, models.ErrInvalidRequest).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
			wantInBody:     []string{"Name and Amount are required"},
		},
		{
			name: "missing_configuration_returns_500",
			form: url.Values{
				"name":   {"Asha"},
				"amount": {"150.00"},
			},
			setup: func(t *testing.T) *mocks.MockPaymentService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					Return(nil, models.ErrMissingConfig).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
			wantInBody:     []string{"Missing payment gateway configuration"},
		},
		{
			name: "gateway_error_includes_detail_outside_production",
			form: url.Values{
				"name":   {"Asha"},
				"amount": {"150.00"},
			},
			setup: func(t *testing.T) *mocks.MockPaymentService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					Return(nil, models.NewGatewayError("invalid api key")).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
			wantInBody:     []string{"Failed to create payment", "invalid api key"},
		},
		{
			name: "gateway_error_hides_detail_in_production",
			form: url.Values{
				"name":   {"Asha"},
				"amount": {"150.00"},
			},
			production: true,
			setup: func(t *testing.T) *mocks.MockPaymentService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					Return(nil, models.NewGatewayError("invalid api key")).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
			wantInBody:     []string{"Failed to create payment"},
			wantNotInBody:  []string{"invalid api key"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ph := NewPaymentHandler(tt.setup(t), tt.production)

			req := httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			ph.CreatePayment().ServeHTTP(rec, req)

			res := rec.Result()
			defer res.Body.Close()

			require.Equal(t, tt.wantStatusCode, res.StatusCode)

			body := rec.Body.String()
			for _, want := range tt.wantInBody {
				assert.Contains(t, body, want)
			}
			for _, notWant := range tt.wantNotInBody {
				assert.NotContains(t, body, notWant)
			}
		})
	}
}

func TestPaymentHandler_PaymentStatus(t *testing.T) {
	tests := []struct {
		name           string
		orderID        string
		setup          func(t *testing.T) *mocks.MockPaymentService
		wantStatusCode int
		wantBody       string
	}{
		{
			name:    "known_order_returns_its_status",
			orderID: "ORD-1-1",
			setup: func(t *testing.T) *mocks.MockPaymentService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().PaymentStatus(gomock.Any(), "ORD-1-1").
					Return(models.PaymentStatusSuccess, nil).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"status":"SUCCESS"}`,
		},
		{
			name:    "unknown_order_returns_pending",
			orderID: "ORD-no-such",
			setup: func(t *testing.T) *mocks.MockPaymentService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().PaymentStatus(gomock.Any(), "ORD-no-such").
					Return(models.PaymentStatusPending, nil).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"status":"PENDING"}`,
		},
		{
			name:    "store_failure_returns_500",
			orderID: "ORD-1-1",
			setup: func(t *testing.T) *mocks.MockPaymentService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().PaymentStatus(gomock.Any(), gomock.Any()).
					Return("", errors.New("connection refused")).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ph := NewPaymentHandler(tt.setup(t), false)

			req := httptest.NewRequest(http.MethodGet, "/payment/status?orderId="+tt.orderID, nil)
			rec := httptest.NewRecorder()

			ph.PaymentStatus().ServeHTTP(rec, req)

			res := rec.Result()
			defer res.Body.Close()

			require.Equal(t, tt.wantStatusCode, res.StatusCode)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
