package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	models "queenzz/internal/domain/models/library"
	"queenzz/internal/domain/repositories"
)

// AppDataKey is the row key of the snapshot
const AppDataKey = "app_data"

// AppDataRepository stores the snapshot as a JSONB value under AppDataKey
type AppDataRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAppDataRepository creates a new snapshot repository
func NewAppDataRepository(config *RepositoryConfig) repositories.AppDataRepository {
	return &AppDataRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Load returns the stored snapshot, or nil when the row does not exist
func (r *AppDataRepository) Load(ctx context.Context) (*models.AppData, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, r.tables.AppData)

	var raw []byte
	db := executor(ctx, r.pool)
	if err := db.QueryRow(ctx, query, AppDataKey).Scan(&raw); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapError("load app data", err)
	}

	var data models.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode app data: %w", err)
	}
	return &data, nil
}

// Save upserts the snapshot row
func (r *AppDataRepository) Save(ctx context.Context, data *models.AppData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode app data: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, r.tables.AppData)

	db := executor(ctx, r.pool)
	if _, err := db.Exec(ctx, query, AppDataKey, raw); err != nil {
		return wrapError("save app data", err)
	}
	return nil
}
