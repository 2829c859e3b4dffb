package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Compile-time check to ensure MercadoPagoProvider implements Provider
var _ Provider = (*MercadoPagoProvider)(nil)

// MercadoPagoProvider creates PIX charges through the Mercado Pago
// payments API.
type MercadoPagoProvider struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewMercadoPagoProvider creates a new MercadoPagoProvider
func NewMercadoPagoProvider(baseURL, accessToken string) *MercadoPagoProvider {
	return &MercadoPagoProvider{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type mpCreateRequest struct {
	TransactionAmount float64 `json:"transaction_amount"`
	Description       string  `json:"description"`
	PaymentMethodID   string  `json:"payment_method_id"`
	ExternalReference string  `json:"external_reference"`
	Payer             mpPayer `json:"payer"`
}

type mpPayer struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
}

type mpPaymentResponse struct {
	ID                 json.Number `json:"id"`
	Status             string      `json:"status"`
	ExternalReference  string      `json:"external_reference"`
	PointOfInteraction struct {
		TransactionData struct {
			QRCodeBase64 string `json:"qr_code_base64"`
			QRCode       string `json:"qr_code"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
}

// CreatePixPayment creates a PIX charge and returns its QR artifacts
func (p *MercadoPagoProvider) CreatePixPayment(ctx context.Context, req PixRequest) (*PixPayment, error) {
	payload := mpCreateRequest{
		TransactionAmount: req.Amount,
		Description:       req.Description,
		PaymentMethodID:   "pix",
		ExternalReference: req.ExternalReference,
		Payer: mpPayer{
			Email:     req.BuyerEmail,
			FirstName: req.BuyerName,
		},
	}
	if payload.Payer.Email == "" {
		// Mercado Pago requires a payer email on PIX charges
		payload.Payer.Email = fmt.Sprintf("buyer-%s@myrifa.app", req.ExternalReference)
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/payments", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.accessToken)
	httpReq.Header.Set("X-Idempotency-Key", req.ExternalReference)

	var response mpPaymentResponse
	if err := p.do(httpReq, &response); err != nil {
		return nil, err
	}

	return &PixPayment{
		ID:         response.ID.String(),
		QRCode:     response.PointOfInteraction.TransactionData.QRCodeBase64,
		QRCodeCopy: response.PointOfInteraction.TransactionData.QRCode,
	}, nil
}

// GetPayment fetches a payment by its provider id
func (p *MercadoPagoProvider) GetPayment(ctx context.Context, id string) (*Info, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/payments/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.accessToken)

	var response mpPaymentResponse
	if err := p.do(httpReq, &response); err != nil {
		return nil, err
	}

	return &Info{
		ID:                response.ID.String(),
		Status:            response.Status,
		ExternalReference: response.ExternalReference,
	}, nil
}

func (p *MercadoPagoProvider) do(req *http.Request, out interface{}) error {
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
