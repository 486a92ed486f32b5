package service

import (
	"context"
	"fmt"
	"log/slog"
	"recipe-pack-payments/internal/model"
	"recipe-pack-payments/internal/repository"
	"sort"
)

type PurchaseService interface {
	CheckPurchased(ctx context.Context, compositeKey string) (bool, error)
	ListPurchasedPacks(ctx context.Context, deviceID string) ([]string, error)
}

type purchaseServiceImpl struct {
	log           *slog.Logger
	purchaseStore repository.PurchaseStore
}

func NewPurchaseService(log *slog.Logger, purchaseStore repository.PurchaseStore) PurchaseService {
	return &purchaseServiceImpl{
		log:           log,
		purchaseStore: purchaseStore,
	}
}

// CheckPurchased looks the key up verbatim, so keys written before the
// escaped encoding still resolve.
func (s *purchaseServiceImpl) CheckPurchased(ctx context.Context, compositeKey string) (bool, error) {
	purchases, err := s.purchaseStore.Read(ctx)
	if err != nil {
		s.log.Error("failed to read purchases",
			slog.String("op", "service.PurchaseService.CheckPurchased"),
			slog.String("error", err.Error()))
		return false, fmt.Errorf("read purchases: %w", err)
	}

	return purchases[compositeKey].Paid, nil
}

// ListPurchasedPacks returns the paid packs of exactly deviceID, sorted.
func (s *purchaseServiceImpl) ListPurchasedPacks(ctx context.Context, deviceID string) ([]string, error) {
	purchases, err := s.purchaseStore.Read(ctx)
	if err != nil {
		s.log.Error("failed to read purchases",
			slog.String("op", "service.PurchaseService.ListPurchasedPacks"),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("read purchases: %w", err)
	}

	packs := []string{}
	for raw, rec := range purchases {
		if !rec.Paid {
			continue
		}
		key, err := model.ParsePurchaseKey(raw)
		if err != nil {
			continue
		}
		if key.DeviceID == deviceID {
			packs = append(packs, key.PackID)
		}
	}
	sort.Strings(packs)

	return packs, nil
}
