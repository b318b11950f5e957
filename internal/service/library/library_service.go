package library

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"queenzz/internal/config"
	"queenzz/internal/domain"
	models "queenzz/internal/domain/models/library"
	svc "queenzz/internal/domain/services/library"
)

type libraryService struct {
	store  *Store
	logger *slog.Logger
}

// NewLibraryService creates a new library service
func NewLibraryService(store *Store, logger *slog.Logger) svc.LibraryService {
	return &libraryService{store: store, logger: logger}
}

func (s *libraryService) Snapshot(ctx context.Context) (*models.AppData, error) {
	return s.store.Snapshot(ctx)
}

func (s *libraryService) ListLibraries(ctx context.Context) ([]svc.LibrarySummary, error) {
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	today := s.store.Now()

	summaries := make([]svc.LibrarySummary, 0, len(data.Libraries))
	for _, lib := range data.SortedLibraries() {
		summary := svc.LibrarySummary{
			ID:          lib.ID,
			Name:        lib.Name,
			CreatedAt:   lib.CreatedAt,
			Active:      lib.ID == data.ActiveLibraryID,
			QueuedCount: len(lib.FailedQuestions),
			DueCount:    len(DueEntries(lib.FailedQuestions, today)),
		}
		for _, item := range Flatten(lib.Items) {
			switch item.Type {
			case models.ItemQuiz:
				summary.QuizCount++
				summary.QuestionCount += len(item.Questions)
			case models.ItemDeck:
				summary.DeckCount++
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *libraryService) ActiveLibrary(ctx context.Context) (*models.Library, error) {
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return activeOf(data)
}

func validateLibraryName(name *string) error {
	return validation.Validate(name,
		validation.Required.Error("library name is required"),
		validation.RuneLength(1, config.MaxLibraryNameLength),
	)
}

func (s *libraryService) CreateLibrary(ctx context.Context, req *svc.CreateLibraryRequest) (*models.Library, error) {
	if err := validateLibraryName(&req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var created *models.Library
	_, err := s.store.Update(ctx, func(data *models.AppData, now time.Time) (*models.AppData, error) {
		next, lib, err := CreateLibrary(data, req.Name, now)
		created = lib
		return next, err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("library created", "library_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *libraryService) RenameLibrary(ctx context.Context, req *svc.RenameLibraryRequest) (*models.Library, error) {
	if err := validateLibraryName(&req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	data, err := s.store.Update(ctx, func(data *models.AppData, _ time.Time) (*models.AppData, error) {
		return RenameLibrary(data, req.Name)
	})
	if err != nil {
		return nil, err
	}
	return activeOf(data)
}

func (s *libraryService) DeleteActiveLibrary(ctx context.Context) (*models.Library, error) {
	var deletedID string
	data, err := s.store.Apply(ctx, func(data *models.AppData, _ time.Time) (*Change, error) {
		deleted := data.Active()
		next, err := DeleteActiveLibrary(data)
		if err != nil {
			return nil, err
		}
		deletedID = deleted.ID
		return &Change{Data: next, DropAssets: orphanedAssetKeys(deleted, next)}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("library deleted", "library_id", deletedID, "active_library_id", data.ActiveLibraryID)
	return activeOf(data)
}

func (s *libraryService) SwitchLibrary(ctx context.Context, libraryID string) (*models.Library, error) {
	data, err := s.store.Update(ctx, func(data *models.AppData, _ time.Time) (*models.AppData, error) {
		return SwitchLibrary(data, libraryID)
	})
	if err != nil {
		return nil, err
	}
	return activeOf(data)
}

func (s *libraryService) ResetProgress(ctx context.Context, libraryID string) (*models.Library, error) {
	data, err := s.store.Update(ctx, func(data *models.AppData, _ time.Time) (*models.AppData, error) {
		return ResetProgress(data, libraryID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("progress reset", "library_id", libraryID)
	return data.Libraries[libraryID], nil
}

// orphanedAssetKeys lists the asset keys of a removed library that no
// remaining library refers to. Imports keep question ids, so two libraries
// can share question images.
func orphanedAssetKeys(removed *models.Library, remaining *models.AppData) []string {
	inUse := map[string]bool{}
	for _, lib := range remaining.Libraries {
		for _, key := range libraryAssetKeys(lib) {
			inUse[key] = true
		}
	}
	var keys []string
	for _, key := range libraryAssetKeys(removed) {
		if !inUse[key] {
			keys = append(keys, key)
		}
	}
	return keys
}

// libraryAssetKeys lists every asset a library may own
func libraryAssetKeys(lib *models.Library) []string {
	var keys []string
	for _, doc := range FlattenDocuments(lib.Documents) {
		if doc.Type == models.DocumentFile {
			keys = append(keys, doc.ID)
		}
	}
	for _, quiz := range FlattenQuizzes(lib.Items) {
		for _, q := range quiz.Questions {
			keys = append(keys, questionImagePrefix+q.ID, sourceImagePrefix+q.ID)
		}
	}
	for _, m := range lib.Mnemonics {
		keys = append(keys, mnemonicImagePrefix+m.ID)
	}
	return keys
}
