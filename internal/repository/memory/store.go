package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"queenzz/internal/domain"
	models "queenzz/internal/domain/models/library"
	"queenzz/internal/domain/repositories"
)

// AppDataRepository keeps the snapshot as encoded JSON so that callers never
// share memory with the stored copy
type AppDataRepository struct {
	mu  sync.RWMutex
	raw []byte
}

// NewAppDataRepository creates an empty in-memory snapshot store
func NewAppDataRepository() *AppDataRepository {
	return &AppDataRepository{}
}

// Load decodes the stored snapshot, or returns nil when nothing was saved
func (r *AppDataRepository) Load(ctx context.Context) (*models.AppData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.raw == nil {
		return nil, nil
	}
	var data models.AppData
	if err := json.Unmarshal(r.raw, &data); err != nil {
		return nil, fmt.Errorf("decode app data: %w", err)
	}
	return &data, nil
}

// Save replaces the stored snapshot
func (r *AppDataRepository) Save(ctx context.Context, data *models.AppData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode app data: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.raw = raw
	return nil
}

// AssetRepository is a map-backed asset store
type AssetRepository struct {
	mu     sync.RWMutex
	assets map[string]string
}

// NewAssetRepository creates an empty in-memory asset store
func NewAssetRepository() *AssetRepository {
	return &AssetRepository{assets: make(map[string]string)}
}

// Get retrieves the content of one asset
func (r *AssetRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	content, ok := r.assets[key]
	if !ok {
		return "", domain.NewNotFound("asset", key)
	}
	return content, nil
}

// Put creates or replaces one asset
func (r *AssetRepository) Put(ctx context.Context, key, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.assets[key] = content
	return nil
}

// Delete removes the given assets
func (r *AssetRepository) Delete(ctx context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range keys {
		delete(r.assets, key)
	}
	return nil
}

// Keys lists every asset key in lexical order
func (r *AssetRepository) Keys(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.assets))
	for key := range r.assets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// TransactionManager runs fn directly. Writes are not rolled back on failure.
type TransactionManager struct{}

// NewTransactionManager creates a pass-through transaction manager
func NewTransactionManager() repositories.TransactionManager {
	return TransactionManager{}
}

// ExecTx calls fn with ctx unchanged
func (TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

var (
	_ repositories.AppDataRepository = (*AppDataRepository)(nil)
	_ repositories.AssetRepository   = (*AssetRepository)(nil)
)
