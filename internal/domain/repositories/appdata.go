package repositories

import (
	"context"

	models "queenzz/internal/domain/models/library"
)

// AppDataRepository persists the whole study snapshot under a single key
type AppDataRepository interface {
	// Load returns the stored snapshot, or nil when nothing was saved yet
	Load(ctx context.Context) (*models.AppData, error)

	// Save replaces the stored snapshot
	Save(ctx context.Context, data *models.AppData) error
}
