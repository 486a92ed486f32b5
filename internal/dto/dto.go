package dto

import "github.com/shopspring/decimal"

type CreatePaymentRequest struct {
	UserID string          `json:"userId"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	PackID string          `json:"packId"` // optional, defaults to title
}

type CreatePaymentResponse struct {
	InitPoint string `json:"init_point"`
}

type CheckResponse struct {
	Paid bool `json:"paid"`
}

type PacksResponse struct {
	Packs []string `json:"packs"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
