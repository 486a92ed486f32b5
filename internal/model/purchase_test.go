package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseKey_StringMatchesLegacyFormat(t *testing.T) {
	key := PurchaseKey{DeviceID: "device1", PackID: "packA"}

	assert.Equal(t, "device1_packA", key.String())
}

func TestPurchaseKey_RoundTripsUnderscores(t *testing.T) {
	cases := []PurchaseKey{
		{DeviceID: "device1", PackID: "packA"},
		{DeviceID: "dev_ice", PackID: "pack_a_b"},
		{DeviceID: "100%_sure", PackID: "p"},
		{DeviceID: "%5F", PackID: "_"},
	}

	for _, want := range cases {
		got, err := ParsePurchaseKey(want.String())
		require.NoError(t, err, want.String())
		assert.Equal(t, want, got)
	}
}

func TestParsePurchaseKey_SplitsOnFirstUnderscore(t *testing.T) {
	key, err := ParsePurchaseKey("device1_pack_with_underscores")

	require.NoError(t, err)
	assert.Equal(t, "device1", key.DeviceID)
	assert.Equal(t, "pack_with_underscores", key.PackID)
}

func TestParsePurchaseKey_RejectsMalformedKeys(t *testing.T) {
	for _, raw := range []string{"", "nodelimiter", "_packA", "device1_", "dev%zz_pack", "dev%_pack"} {
		_, err := ParsePurchaseKey(raw)
		assert.ErrorIs(t, err, ErrInvalidKey, raw)
	}
}

func TestPaymentNotification_AcceptsStringAndNumericIDs(t *testing.T) {
	var asString PaymentNotification
	require.NoError(t, json.Unmarshal([]byte(`{"type":"payment","data":{"id":"123"}}`), &asString))
	assert.Equal(t, NotificationID("123"), asString.Data.ID)

	var asNumber PaymentNotification
	require.NoError(t, json.Unmarshal([]byte(`{"data":{"id":456}}`), &asNumber))
	assert.Equal(t, NotificationID("456"), asNumber.Data.ID)

	var missing PaymentNotification
	require.NoError(t, json.Unmarshal([]byte(`{"action":"payment.created"}`), &missing))
	assert.Empty(t, missing.Data.ID)
}
