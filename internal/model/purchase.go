package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrPaymentProvider = errors.New("payment provider error")
	ErrCorruptStore    = errors.New("corrupt purchase store")
	ErrInvalidKey      = errors.New("invalid purchase key")
)

const keyDelimiter = "_"

// PurchaseKey identifies one pack bought from one device.
type PurchaseKey struct {
	DeviceID string
	PackID   string
}

var deviceEscaper = strings.NewReplacer("%", "%25", "_", "%5F")

// String encodes the key as "<device>_<pack>". Only the device segment is
// escaped, so the first underscore is always the delimiter.
func (k PurchaseKey) String() string {
	return deviceEscaper.Replace(k.DeviceID) + keyDelimiter + k.PackID
}

func ParsePurchaseKey(s string) (PurchaseKey, error) {
	device, pack, ok := strings.Cut(s, keyDelimiter)
	if !ok || device == "" || pack == "" {
		return PurchaseKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	deviceID, err := unescapeDevice(device)
	if err != nil {
		return PurchaseKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	return PurchaseKey{DeviceID: deviceID, PackID: pack}, nil
}

func unescapeDevice(s string) (string, error) {
	if !strings.Contains(s, "%") {
		return s, nil
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+3 > len(s) {
			return "", errors.New("truncated escape")
		}
		switch s[i : i+3] {
		case "%25":
			b.WriteByte('%')
		case "%5F", "%5f":
			b.WriteByte('_')
		default:
			return "", fmt.Errorf("unknown escape %q", s[i:i+3])
		}
		i += 2
	}
	return b.String(), nil
}

type PurchaseRecord struct {
	Paid      bool      `json:"paid"`
	PaymentID string    `json:"paymentId"`
	Date      time.Time `json:"date"`
}

// Purchases is the persisted document: encoded PurchaseKey -> record.
type Purchases map[string]PurchaseRecord
