package model

import "time"

type PurchaseRow struct {
	Key       string `gorm:"column:purchase_key;primaryKey;size:255;not null"` // encoded PurchaseKey
	DeviceID  string `gorm:"size:128;index;not null"`
	PackID    string `gorm:"size:128;not null"`
	Paid      bool   `gorm:"not null"`
	PaymentID string `gorm:"size:64"`
	PaidAt    time.Time
}

func (PurchaseRow) TableName() string {
	return "purchase_records"
}
