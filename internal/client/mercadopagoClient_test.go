package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"recipe-pack-payments/internal/config"
	"recipe-pack-payments/internal/model"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) PaymentProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return NewMercadoPagoClient(&config.MercadoPago{
		BaseApiURL:      srv.URL + "/",
		AccessToken:     "TEST-token",
		Currency:        "BRL",
		NotificationURL: "https://api.example.com/webhook",
	})
}

func TestCreateCheckout_SendsPreference(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		assert.Equal(t, "Bearer TEST-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Idempotency-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"pref-1","init_point":"https://mp/checkout?pref=1","sandbox_init_point":"https://sandbox.mp/checkout?pref=1"}`))
	})

	checkout, err := c.CreateCheckout(context.Background(), &CheckoutRequest{
		Title:             "Vegan pack",
		UnitPrice:         decimal.RequireFromString("19.90"),
		ExternalReference: "device1_vegan",
		SuccessURL:        "https://api.example.com/success",
		AutoReturn:        true,
	})

	require.NoError(t, err)
	assert.Equal(t, "pref-1", checkout.PreferenceID)
	assert.Equal(t, "https://mp/checkout?pref=1", checkout.InitPoint)
	assert.Equal(t, "https://sandbox.mp/checkout?pref=1", checkout.SandboxInitPoint)

	assert.Equal(t, "device1_vegan", got["external_reference"])
	assert.Equal(t, "approved", got["auto_return"])
	assert.Equal(t, "https://api.example.com/webhook", got["notification_url"])
	items := got["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "Vegan pack", item["title"])
	assert.Equal(t, 19.9, item["unit_price"])
	assert.Equal(t, float64(1), item["quantity"])
	assert.Equal(t, "BRL", item["currency_id"])
}

func TestCreateCheckout_OmitsAutoReturnWithoutSuccessURL(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"pref-1","init_point":"https://mp/x"}`))
	})

	_, err := c.CreateCheckout(context.Background(), &CheckoutRequest{
		Title:      "Pack",
		UnitPrice:  decimal.NewFromInt(5),
		AutoReturn: true,
	})

	require.NoError(t, err)
	assert.NotContains(t, got, "auto_return")
}

func TestCreateCheckout_ProviderFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid access token"}`))
	})

	_, err := c.CreateCheckout(context.Background(), &CheckoutRequest{Title: "Pack", UnitPrice: decimal.NewFromInt(5)})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrPaymentProvider)
	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusUnauthorized, perr.StatusCode)
	assert.Contains(t, perr.Body, "invalid access token")
}

func TestCreateCheckout_MissingInitPoint(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"pref-1"}`))
	})

	_, err := c.CreateCheckout(context.Background(), &CheckoutRequest{Title: "Pack", UnitPrice: decimal.NewFromInt(5)})

	assert.ErrorIs(t, err, model.ErrPaymentProvider)
}

func TestGetPayment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/payments/987", r.URL.Path)
		assert.Equal(t, "Bearer TEST-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":987,"status":"approved","status_detail":"accredited","external_reference":"device1_packA"}`))
	})

	payment, err := c.GetPayment(context.Background(), "987")

	require.NoError(t, err)
	assert.Equal(t, int64(987), payment.ID)
	assert.True(t, payment.Approved())
	assert.Equal(t, "device1_packA", payment.ExternalReference)
}

func TestGetPayment_UndecodableBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway</html>`))
	})

	_, err := c.GetPayment(context.Background(), "1")

	assert.ErrorIs(t, err, model.ErrPaymentProvider)
}

func TestGetPayment_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.GetPayment(context.Background(), "missing")

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusNotFound, perr.StatusCode)
}
