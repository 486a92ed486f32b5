package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

const PaymentStatusApproved = "approved"

// NotificationID accepts both `"123"` and `123`; the provider sends either
// depending on the notification version.
type NotificationID string

func (id *NotificationID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = NotificationID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return err
	}
	*id = NotificationID(n.String())
	return nil
}

type NotificationData struct {
	ID NotificationID `json:"id"`
}

// PaymentNotification is the webhook envelope posted by the provider.
type PaymentNotification struct {
	Type   string           `json:"type"`
	Action string           `json:"action"`
	Data   NotificationData `json:"data"`
}

type Payment struct {
	ID                int64  `json:"id"`
	Status            string `json:"status"`
	StatusDetail      string `json:"status_detail"`
	ExternalReference string `json:"external_reference"`
}

func (p *Payment) Approved() bool {
	return p.Status == PaymentStatusApproved
}
