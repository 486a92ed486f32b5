package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"recipe-pack-payments/internal/model"

	"github.com/redis/go-redis/v9"
)

// redisPurchaseStoreImpl keeps the document as one hash: field = composite
// key, value = record JSON.
type redisPurchaseStoreImpl struct {
	rdb *redis.Client
	key string
}

func NewRedisPurchaseStore(rdb *redis.Client, key string) PurchaseStore {
	return &redisPurchaseStoreImpl{
		rdb: rdb,
		key: key,
	}
}

func (r *redisPurchaseStoreImpl) Read(ctx context.Context) (model.Purchases, error) {
	return r.load(ctx, r.rdb)
}

func (r *redisPurchaseStoreImpl) Write(ctx context.Context, purchases model.Purchases) error {
	fields, err := encodeFields(purchases)
	if err != nil {
		return err
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key)
		if len(fields) > 0 {
			pipe.HSet(ctx, r.key, fields)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write purchases hash: %w", err)
	}

	return nil
}

// Update fails with redis.TxFailedErr when another writer touched the hash
// between the read and the commit.
func (r *redisPurchaseStoreImpl) Update(ctx context.Context, fn func(purchases model.Purchases) error) error {
	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		before, err := r.load(ctx, tx)
		if err != nil {
			return err
		}

		after := clonePurchases(before)
		if err := fn(after); err != nil {
			return err
		}

		changed, removed := diffPurchases(before, after)
		fields, err := encodeFields(changed)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(removed) > 0 {
				pipe.HDel(ctx, r.key, removed...)
			}
			if len(fields) > 0 {
				pipe.HSet(ctx, r.key, fields)
			}
			return nil
		})
		return err
	}, r.key)
	if err != nil {
		return fmt.Errorf("update purchases hash: %w", err)
	}

	return nil
}

type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

func (r *redisPurchaseStoreImpl) load(ctx context.Context, c hashReader) (model.Purchases, error) {
	raw, err := c.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("read purchases hash: %w", err)
	}

	purchases := make(model.Purchases, len(raw))
	for field, value := range raw {
		var rec model.PurchaseRecord
		if err := json.Unmarshal([]byte(value), &rec); err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", model.ErrCorruptStore, field, err)
		}
		purchases[field] = rec
	}

	return purchases, nil
}

func encodeFields(purchases model.Purchases) (map[string]any, error) {
	fields := make(map[string]any, len(purchases))
	for k, rec := range purchases {
		b, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshal purchase %s: %w", k, err)
		}
		fields[k] = string(b)
	}
	return fields, nil
}
