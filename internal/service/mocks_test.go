package service

import (
	"context"
	"recipe-pack-payments/internal/client"
	"recipe-pack-payments/internal/model"

	"github.com/stretchr/testify/mock"
)

type PaymentProviderMock struct {
	mock.Mock
}

func (m *PaymentProviderMock) CreateCheckout(ctx context.Context, req *client.CheckoutRequest) (*client.Checkout, error) {
	args := m.Called(ctx, req)
	checkout, _ := args.Get(0).(*client.Checkout)
	return checkout, args.Error(1)
}

func (m *PaymentProviderMock) GetPayment(ctx context.Context, paymentID string) (*model.Payment, error) {
	args := m.Called(ctx, paymentID)
	payment, _ := args.Get(0).(*model.Payment)
	return payment, args.Error(1)
}

type PurchaseStoreMock struct {
	mock.Mock
}

func (m *PurchaseStoreMock) Read(ctx context.Context) (model.Purchases, error) {
	args := m.Called(ctx)
	purchases, _ := args.Get(0).(model.Purchases)
	return purchases, args.Error(1)
}

func (m *PurchaseStoreMock) Write(ctx context.Context, purchases model.Purchases) error {
	return m.Called(ctx, purchases).Error(0)
}

func (m *PurchaseStoreMock) Update(ctx context.Context, fn func(purchases model.Purchases) error) error {
	return m.Called(ctx, fn).Error(0)
}
