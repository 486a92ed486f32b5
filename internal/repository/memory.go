package repository

import (
	"context"
	"recipe-pack-payments/internal/model"
	"sync"
)

type memoryPurchaseStoreImpl struct {
	mu        sync.Mutex
	purchases model.Purchases
}

func NewMemoryPurchaseStore(seed model.Purchases) PurchaseStore {
	return &memoryPurchaseStoreImpl{
		purchases: clonePurchases(seed),
	}
}

func (s *memoryPurchaseStoreImpl) Read(ctx context.Context) (model.Purchases, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return clonePurchases(s.purchases), nil
}

func (s *memoryPurchaseStoreImpl) Write(ctx context.Context, purchases model.Purchases) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purchases = clonePurchases(purchases)
	return nil
}

func (s *memoryPurchaseStoreImpl) Update(ctx context.Context, fn func(purchases model.Purchases) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	purchases := clonePurchases(s.purchases)
	if err := fn(purchases); err != nil {
		return err
	}

	s.purchases = purchases
	return nil
}
