package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"recipe-pack-payments/internal/model"
	"sync"
)

type filePurchaseStoreImpl struct {
	mu   sync.Mutex
	path string
}

func NewFilePurchaseStore(path string) PurchaseStore {
	return &filePurchaseStoreImpl{
		path: path,
	}
}

func (s *filePurchaseStoreImpl) Read(ctx context.Context) (model.Purchases, error) {
	return s.read()
}

func (s *filePurchaseStoreImpl) Write(ctx context.Context, purchases model.Purchases) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(purchases)
}

func (s *filePurchaseStoreImpl) Update(ctx context.Context, fn func(purchases model.Purchases) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	purchases, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(purchases); err != nil {
		return err
	}

	return s.write(purchases)
}

func (s *filePurchaseStoreImpl) read() (model.Purchases, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Purchases{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read purchase file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return model.Purchases{}, nil
	}

	var purchases model.Purchases
	if err := json.Unmarshal(data, &purchases); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrCorruptStore, s.path, err)
	}
	if purchases == nil {
		purchases = model.Purchases{}
	}

	return purchases, nil
}

// write replaces the document through a temp file + rename so readers never
// observe a partially written file.
func (s *filePurchaseStoreImpl) write(purchases model.Purchases) error {
	if purchases == nil {
		purchases = model.Purchases{}
	}

	data, err := json.MarshalIndent(purchases, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal purchases: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace purchase file: %w", err)
	}

	return nil
}
