package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/simplepay/paygate/internal/handler/http/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentHandler_StaticPages(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		handler    func(ph *PaymentHandler) http.HandlerFunc
		wantInBody []string
	}{
		{
			name:       "index_renders_input_form",
			target:     "/",
			handler:    (*PaymentHandler).Index,
			wantInBody: []string{`action="/payment"`, `name="name"`, `name="amount"`, `name="email"`},
		},
		{
			name:       "success_page_shows_order_id",
			target:     "/payment/success?orderId=ORD-1-1",
			handler:    (*PaymentHandler).PaymentSuccess,
			wantInBody: []string{"Payment Successful", "ORD-1-1"},
		},
		{
			name:       "cancel_page_shows_order_id",
			target:     "/payment/cancel?orderId=ORD-1-1",
			handler:    (*PaymentHandler).PaymentCancel,
			wantInBody: []string{"Payment Failed", "ORD-1-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			// no service call is expected while rendering static pages
			svcMock := mocks.NewMockPaymentService(ctrl)
			ph := NewPaymentHandler(svcMock, false)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			tt.handler(ph).ServeHTTP(rec, req)

			res := rec.Result()
			defer res.Body.Close()

			require.Equal(t, http.StatusOK, res.StatusCode)
			assert.Contains(t, res.Header.Get("Content-Type"), "text/html")

			body := rec.Body.String()
			for _, want := range tt.wantInBody {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/no/such/route", nil)
	rec := httptest.NewRecorder()

	NotFound().ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	require.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, rec.Body.String(), "Page not found")
}
