package uropay

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/simplepay/paygate/internal/models"
)

// Credentials are merchant credentials for the order generation API.
type Credentials struct {
	APIKey    string
	SecretKey string
}

// OrderRequest is uropay order generation request body
type OrderRequest struct {
	VPA             string `json:"vpa"`
	VPAName         string `json:"vpaName"`
	Amount          int64  `json:"amount"` // in paise
	MerchantOrderID string `json:"merchantOrderId"`
	TransactionNote string `json:"transactionNote"`
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	Notes           Notes  `json:"notes"`
}

// Notes carries the per-request correlation token
type Notes struct {
	CustomID string `json:"custom_id"`
}

// Order is successful order generation result
type Order struct {
	UPIString      string `json:"upiString"`
	QRCode         string `json:"qrCode"`
	GatewayOrderID string `json:"uroPayOrderId"`
}

type generateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    Order  `json:"data"`
}

// Client represents HTTP client for uropay order generation requests
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates new Client instance
func NewClient(baseURL string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: baseURL,
	}
}

// GenerateOrder submits a new order to uropay and returns payable details.
// The bearer token is the sha512 hex digest of the merchant secret key.
func (c *Client) GenerateOrder(ctx context.Context, creds Credentials, order OrderRequest) (*Order, error) {
	// POST /order/generate
	url, err := url.JoinPath(c.baseURL, "order", "generate")
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	hashedSecret := sha512.Sum512([]byte(creds.SecretKey))

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-KEY", creds.APIKey)
	req.Header.Set("Authorization", "Bearer "+hex.EncodeToString(hashedSecret[:]))

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, models.NewGatewayError(err.Error())
	}

	genResp := generateResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, models.NewGatewayError("malformed gateway response")
	}

	if genResp.Status != "success" {
		detail := genResp.Message
		if detail == "" {
			detail = resp.Status
		}
		return nil, models.NewGatewayError(detail)
	}

	return &genResp.Data, nil
}
