package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"recipe-pack-payments/internal/config"
	"recipe-pack-payments/internal/model"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentProvider interface {
	CreateCheckout(ctx context.Context, req *CheckoutRequest) (*Checkout, error)
	GetPayment(ctx context.Context, paymentID string) (*model.Payment, error)
}

type CheckoutRequest struct {
	Title             string
	UnitPrice         decimal.Decimal
	ExternalReference string
	SuccessURL        string
	FailureURL        string
	PendingURL        string
	AutoReturn        bool
}

type Checkout struct {
	PreferenceID     string
	InitPoint        string
	SandboxInitPoint string
}

// ProviderError is returned when the provider answers with a non-2xx status.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("mercadopago error %d: %s", e.StatusCode, e.Body)
}

func (e *ProviderError) Unwrap() error {
	return model.ErrPaymentProvider
}

type mercadoPagoClientImpl struct {
	httpClient      *http.Client
	baseApiURL      string
	accessToken     string
	currency        string
	notificationURL string
}

type preferenceItem struct {
	Title      string      `json:"title"`
	Quantity   int         `json:"quantity"`
	UnitPrice  json.Number `json:"unit_price"`
	CurrencyID string      `json:"currency_id"`
}

type preferenceBackURLs struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
	Pending string `json:"pending,omitempty"`
}

type preferenceRequest struct {
	Items             []preferenceItem   `json:"items"`
	ExternalReference string             `json:"external_reference"`
	BackURLs          preferenceBackURLs `json:"back_urls"`
	AutoReturn        string             `json:"auto_return,omitempty"`
	NotificationURL   string             `json:"notification_url,omitempty"`
}

type preferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

func NewMercadoPagoClient(mpCfg *config.MercadoPago) PaymentProvider {
	return &mercadoPagoClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:      strings.TrimSuffix(mpCfg.BaseApiURL, "/"),
		accessToken:     mpCfg.AccessToken,
		currency:        mpCfg.Currency,
		notificationURL: mpCfg.NotificationURL,
	}
}

func (c *mercadoPagoClientImpl) CreateCheckout(ctx context.Context, req *CheckoutRequest) (*Checkout, error) {
	payload := preferenceRequest{
		Items: []preferenceItem{
			{
				Title:      req.Title,
				Quantity:   1,
				UnitPrice:  json.Number(req.UnitPrice.String()),
				CurrencyID: c.currency,
			},
		},
		ExternalReference: req.ExternalReference,
		BackURLs: preferenceBackURLs{
			Success: req.SuccessURL,
			Failure: req.FailureURL,
			Pending: req.PendingURL,
		},
		NotificationURL: c.notificationURL,
	}
	// the provider rejects auto_return without a success back url
	if req.AutoReturn && req.SuccessURL != "" {
		payload.AutoReturn = model.PaymentStatusApproved
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/checkout/preferences",
		bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	httpReq.Header.Set("X-Idempotency-Key", uuid.NewString())

	var result preferenceResponse
	if err := c.do(httpReq, &result); err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	if result.InitPoint == "" && result.SandboxInitPoint == "" {
		return nil, fmt.Errorf("create preference: %w: response has no init_point", model.ErrPaymentProvider)
	}

	return &Checkout{
		PreferenceID:     result.ID,
		InitPoint:        result.InitPoint,
		SandboxInitPoint: result.SandboxInitPoint,
	}, nil
}

func (c *mercadoPagoClientImpl) GetPayment(ctx context.Context, paymentID string) (*model.Payment, error) {
	endpoint := fmt.Sprintf("%s/v1/payments/%s", c.baseApiURL, url.PathEscape(paymentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create payment request: %w", err)
	}

	var payment model.Payment
	if err := c.do(req, &payment); err != nil {
		return nil, fmt.Errorf("get payment %s: %w", paymentID, err)
	}

	return &payment, nil
}

func (c *mercadoPagoClientImpl) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: http client do: %w", model.ErrPaymentProvider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %w", model.ErrPaymentProvider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ProviderError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", model.ErrPaymentProvider, err)
	}

	return nil
}
