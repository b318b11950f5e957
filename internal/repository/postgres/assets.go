package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"queenzz/internal/domain"
	"queenzz/internal/domain/repositories"
)

// AssetRepository stores base64 blobs keyed by asset key
type AssetRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(config *RepositoryConfig) repositories.AssetRepository {
	return &AssetRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Get retrieves the content of one asset
func (r *AssetRepository) Get(ctx context.Context, key string) (string, error) {
	query := fmt.Sprintf(`SELECT content FROM %s WHERE key = $1`, r.tables.Assets)

	var content string
	db := executor(ctx, r.pool)
	if err := db.QueryRow(ctx, query, key).Scan(&content); err != nil {
		if isNoRows(err) {
			return "", domain.NewNotFound("asset", key)
		}
		return "", wrapError("get asset", err)
	}
	return content, nil
}

// Put upserts one asset
func (r *AssetRepository) Put(ctx context.Context, key, content string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, content, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET content = EXCLUDED.content, updated_at = NOW()
	`, r.tables.Assets)

	db := executor(ctx, r.pool)
	if _, err := db.Exec(ctx, query, key, content); err != nil {
		return wrapError("put asset", err)
	}
	return nil
}

// Delete removes the given assets
func (r *AssetRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = ANY($1)`, r.tables.Assets)

	db := executor(ctx, r.pool)
	if _, err := db.Exec(ctx, query, keys); err != nil {
		return wrapError("delete assets", err)
	}
	return nil
}

// Keys lists every asset key
func (r *AssetRepository) Keys(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT key FROM %s ORDER BY key`, r.tables.Assets)

	db := executor(ctx, r.pool)
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, wrapError("list assets", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan asset key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("list assets", err)
	}
	return keys, nil
}
