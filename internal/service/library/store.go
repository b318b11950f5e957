package library

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	models "queenzz/internal/domain/models/library"
	"queenzz/internal/domain/repositories"
	"queenzz/internal/httputil"
)

// Asset keys of question and mnemonic images. Document files use their id.
const (
	questionImagePrefix = "q_image_"
	sourceImagePrefix   = "q_source_image_"
	mnemonicImagePrefix = "mnemonic_"
)

// Change is the result of a transition: the next snapshot plus the asset
// writes that must commit with it
type Change struct {
	Data       *models.AppData
	PutAssets  map[string]string
	DropAssets []string
}

// Store serializes every read-modify-write of the snapshot. Each update loads
// the stored snapshot, migrates it, applies a pure transition and saves the
// result together with its asset writes in one transaction.
type Store struct {
	mu        sync.Mutex
	appData   repositories.AppDataRepository
	assets    repositories.AssetRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
	now       func() time.Time
}

// NewStore creates a new snapshot store
func NewStore(
	appData repositories.AppDataRepository,
	assets repositories.AssetRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *Store {
	return &Store{
		appData:   appData,
		assets:    assets,
		txManager: txManager,
		logger:    logger,
		now:       time.Now,
	}
}

// SetClock replaces the time source
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Now returns the current time of the store clock
func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now()
}

// Snapshot returns the current migrated snapshot
func (s *Store) Snapshot(ctx context.Context) (*models.AppData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Update applies a transition that only touches the snapshot
func (s *Store) Update(ctx context.Context, fn func(data *models.AppData, now time.Time) (*models.AppData, error)) (*models.AppData, error) {
	return s.Apply(ctx, func(data *models.AppData, now time.Time) (*Change, error) {
		next, err := fn(data, now)
		if err != nil {
			return nil, err
		}
		return &Change{Data: next}, nil
	})
}

// Apply applies a transition and persists its change
func (s *Store) Apply(ctx context.Context, fn func(data *models.AppData, now time.Time) (*Change, error)) (*models.AppData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	change, err := fn(data, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, change); err != nil {
		return nil, err
	}
	return change.Data, nil
}

// Asset returns one stored asset
func (s *Store) Asset(ctx context.Context, key string) (string, error) {
	return s.assets.Get(ctx, key)
}

// load reads and migrates the stored snapshot. Migrations are persisted
// right away so legacy file contents land in the asset store once.
func (s *Store) load(ctx context.Context) (*models.AppData, error) {
	raw, err := s.appData.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	migrated := Migrate(raw, s.now())
	if !migrated.Changed {
		return migrated.Data, nil
	}

	s.logger.Info("snapshot migrated",
		"libraries", len(migrated.Data.Libraries),
		"lifted_assets", len(migrated.Assets),
	)
	if err := s.save(ctx, &Change{Data: migrated.Data, PutAssets: migrated.Assets}); err != nil {
		return nil, err
	}
	return migrated.Data, nil
}

func (s *Store) save(ctx context.Context, change *Change) error {
	start := time.Now()
	s.logger.Debug("save started",
		"active_library_id", change.Data.ActiveLibraryID,
		"put_assets", len(change.PutAssets),
		"drop_assets", len(change.DropAssets),
	)

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for key, content := range change.PutAssets {
			if err := s.assets.Put(txCtx, key, content); err != nil {
				return err
			}
		}
		if err := s.assets.Delete(txCtx, change.DropAssets...); err != nil {
			return err
		}
		return s.appData.Save(txCtx, change.Data)
	})
	if err != nil {
		s.logger.Error("save failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", httputil.RequestIDFrom(ctx),
		)
		return fmt.Errorf("save snapshot: %w", err)
	}

	s.logger.Debug("save succeeded", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// activeOf returns the active library of a snapshot returned by a transition
func activeOf(data *models.AppData) (*models.Library, error) {
	lib := data.Active()
	if lib == nil {
		return nil, ErrNoActiveLibrary
	}
	return lib, nil
}
