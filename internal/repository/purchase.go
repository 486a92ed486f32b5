package repository

import (
	"context"
	"recipe-pack-payments/internal/model"
)

// PurchaseStore persists the whole purchase document. Update is the only
// safe way to read-modify-write: each implementation serializes it.
type PurchaseStore interface {
	Read(ctx context.Context) (model.Purchases, error)
	Write(ctx context.Context, purchases model.Purchases) error
	Update(ctx context.Context, fn func(purchases model.Purchases) error) error
}

func clonePurchases(p model.Purchases) model.Purchases {
	out := make(model.Purchases, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// diffPurchases returns the entries of after that are new or changed, and
// the keys of before that no longer exist in after.
func diffPurchases(before, after model.Purchases) (model.Purchases, []string) {
	changed := make(model.Purchases)
	for k, rec := range after {
		prev, ok := before[k]
		if !ok || !sameRecord(prev, rec) {
			changed[k] = rec
		}
	}

	var removed []string
	for k := range before {
		if _, ok := after[k]; !ok {
			removed = append(removed, k)
		}
	}

	return changed, removed
}

func sameRecord(a, b model.PurchaseRecord) bool {
	return a.Paid == b.Paid && a.PaymentID == b.PaymentID && a.Date.Equal(b.Date)
}
