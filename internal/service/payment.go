package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"recipe-pack-payments/internal/client"
	"recipe-pack-payments/internal/dto"
	"recipe-pack-payments/internal/model"
	"recipe-pack-payments/internal/repository"
	"strings"
	"time"
)

const notificationTypePayment = "payment"

type PaymentService interface {
	CreatePayment(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error)
	HandleNotification(ctx context.Context, body []byte, query url.Values) error
}

// CheckoutConfig holds the redirect settings sent with every checkout.
type CheckoutConfig struct {
	SuccessURL string
	FailureURL string
	PendingURL string
	AutoReturn bool
	Sandbox    bool
}

type paymentServiceImpl struct {
	log           *slog.Logger
	provider      client.PaymentProvider
	purchaseStore repository.PurchaseStore
	checkout      CheckoutConfig
	now           func() time.Time
}

func NewPaymentService(
	log *slog.Logger,
	provider client.PaymentProvider,
	purchaseStore repository.PurchaseStore,
	checkout CheckoutConfig,
) PaymentService {
	return &paymentServiceImpl{
		log:           log,
		provider:      provider,
		purchaseStore: purchaseStore,
		checkout:      checkout,
		now:           time.Now,
	}
}

func (s *paymentServiceImpl) CreatePayment(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	const op = "service.PaymentService.CreatePayment"

	if req == nil {
		return nil, fmt.Errorf("%w: empty body", model.ErrInvalidRequest)
	}

	deviceID := strings.TrimSpace(req.UserID)
	title := strings.TrimSpace(req.Title)
	if deviceID == "" || title == "" || !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: userId, title and a positive price are required", model.ErrInvalidRequest)
	}

	packID := strings.TrimSpace(req.PackID)
	if packID == "" {
		packID = title
	}
	key := model.PurchaseKey{DeviceID: deviceID, PackID: packID}

	log := s.log.With(
		slog.String("op", op),
		slog.String("purchase_key", key.String()),
	)

	checkout, err := s.provider.CreateCheckout(ctx, &client.CheckoutRequest{
		Title:             title,
		UnitPrice:         req.Price,
		ExternalReference: key.String(),
		SuccessURL:        s.checkout.SuccessURL,
		FailureURL:        s.checkout.FailureURL,
		PendingURL:        s.checkout.PendingURL,
		AutoReturn:        s.checkout.AutoReturn,
	})
	if err != nil {
		log.Error("failed to create checkout", slog.String("error", err.Error()))
		return nil, fmt.Errorf("provider create checkout: %w", err)
	}

	initPoint := checkout.InitPoint
	if s.checkout.Sandbox && checkout.SandboxInitPoint != "" {
		initPoint = checkout.SandboxInitPoint
	}

	log.Info("checkout created", slog.String("preference_id", checkout.PreferenceID))

	return &dto.CreatePaymentResponse{
		InitPoint: initPoint,
	}, nil
}

// HandleNotification reconciles one provider notification with the store.
// Notifications without a payment id, or for other resource types, are
// acknowledged without side effects.
func (s *paymentServiceImpl) HandleNotification(ctx context.Context, body []byte, query url.Values) error {
	const op = "service.PaymentService.HandleNotification"

	log := s.log.With(slog.String("op", op))

	paymentID, ok := notificationPaymentID(body, query)
	if !ok {
		log.Debug("notification ignored: no payment id")
		return nil
	}
	log = log.With(slog.String("payment_id", paymentID))

	payment, err := s.provider.GetPayment(ctx, paymentID)
	if err != nil {
		log.Error("failed to get payment", slog.String("error", err.Error()))
		return fmt.Errorf("provider get payment: %w", err)
	}

	if !payment.Approved() {
		log.Info("payment not approved", slog.String("status", payment.Status))
		return nil
	}

	key, err := model.ParsePurchaseKey(payment.ExternalReference)
	if err != nil {
		log.Error("approved payment has unusable external reference",
			slog.String("external_reference", payment.ExternalReference))
		return fmt.Errorf("%w: external reference: %w", model.ErrPaymentProvider, err)
	}

	err = s.purchaseStore.Update(ctx, func(purchases model.Purchases) error {
		purchases[key.String()] = model.PurchaseRecord{
			Paid:      true,
			PaymentID: paymentID,
			Date:      s.now().UTC(),
		}
		return nil
	})
	if err != nil {
		log.Error("failed to record purchase", slog.String("error", err.Error()))
		return fmt.Errorf("record purchase: %w", err)
	}

	log.Info("purchase recorded",
		slog.String("device_id", key.DeviceID),
		slog.String("pack_id", key.PackID))

	return nil
}

// notificationPaymentID extracts the payment id from the JSON envelope and
// falls back to the query string used by the provider's IPN variant.
func notificationPaymentID(body []byte, query url.Values) (string, bool) {
	var n model.PaymentNotification
	if len(body) > 0 {
		if err := json.Unmarshal(body, &n); err != nil {
			n = model.PaymentNotification{}
		}
	}

	if n.Type != "" && n.Type != notificationTypePayment {
		return "", false
	}
	if id := strings.TrimSpace(string(n.Data.ID)); id != "" {
		return id, true
	}

	topic := query.Get("topic")
	if topic == "" {
		topic = query.Get("type")
	}

	if id := strings.TrimSpace(query.Get("data.id")); id != "" && (topic == "" || topic == notificationTypePayment) {
		return id, true
	}
	if id := strings.TrimSpace(query.Get("id")); id != "" && topic == notificationTypePayment {
		return id, true
	}

	return "", false
}
