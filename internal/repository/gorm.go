package repository

import (
	"context"
	"fmt"
	"recipe-pack-payments/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormPurchaseStoreImpl struct {
	db *gorm.DB
}

func NewGormPurchaseStore(db *gorm.DB) PurchaseStore {
	return &gormPurchaseStoreImpl{
		db: db,
	}
}

func (r *gormPurchaseStoreImpl) Read(ctx context.Context) (model.Purchases, error) {
	return r.load(r.db.WithContext(ctx), false)
}

func (r *gormPurchaseStoreImpl) Write(ctx context.Context, purchases model.Purchases) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		before, err := r.load(tx, true)
		if err != nil {
			return err
		}

		return r.apply(tx, before, purchases)
	})
}

func (r *gormPurchaseStoreImpl) Update(ctx context.Context, fn func(purchases model.Purchases) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		before, err := r.load(tx, true)
		if err != nil {
			return err
		}

		after := clonePurchases(before)
		if err := fn(after); err != nil {
			return err
		}

		return r.apply(tx, before, after)
	})
}

func (r *gormPurchaseStoreImpl) load(tx *gorm.DB, forUpdate bool) (model.Purchases, error) {
	// sqlite serializes writers on its own and has no FOR UPDATE
	if forUpdate && tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rows []*model.PurchaseRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load purchase rows: %w", err)
	}

	purchases := make(model.Purchases, len(rows))
	for _, row := range rows {
		purchases[row.Key] = model.PurchaseRecord{
			Paid:      row.Paid,
			PaymentID: row.PaymentID,
			Date:      row.PaidAt,
		}
	}

	return purchases, nil
}

func (r *gormPurchaseStoreImpl) apply(tx *gorm.DB, before, after model.Purchases) error {
	changed, removed := diffPurchases(before, after)

	if len(removed) > 0 {
		err := tx.Where("purchase_key IN ?", removed).Delete(&model.PurchaseRow{}).Error
		if err != nil {
			return fmt.Errorf("delete purchase rows: %w", err)
		}
	}

	if len(changed) == 0 {
		return nil
	}

	rows := make([]*model.PurchaseRow, 0, len(changed))
	for key, rec := range changed {
		row := &model.PurchaseRow{
			Key:       key,
			Paid:      rec.Paid,
			PaymentID: rec.PaymentID,
			PaidAt:    rec.Date,
		}
		if pk, err := model.ParsePurchaseKey(key); err == nil {
			row.DeviceID = pk.DeviceID
			row.PackID = pk.PackID
		}
		rows = append(rows, row)
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "purchase_key"}},
		UpdateAll: true,
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("upsert purchase rows: %w", err)
	}

	return nil
}
