package library

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"queenzz/internal/domain"
	models "queenzz/internal/domain/models/library"
	svc "queenzz/internal/domain/services/library"
	"queenzz/internal/httputil"
	"queenzz/internal/service/export"
)

type transferService struct {
	store     *Store
	sanitizer *TextSanitizer
	logger    *slog.Logger
}

// NewTransferService creates a new import/export service
func NewTransferService(store *Store, sanitizer *TextSanitizer, logger *slog.Logger) svc.TransferService {
	return &transferService{store: store, sanitizer: sanitizer, logger: logger}
}

func (s *transferService) Export(ctx context.Context, req *svc.ExportRequest) (*svc.ExportResult, error) {
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	active, err := activeOf(data)
	if err != nil {
		return nil, err
	}

	selected := req.SelectedIDs
	if len(selected) == 0 {
		for _, item := range active.Items {
			selected = append(selected, item.ID)
		}
	}

	var missing []string
	lib, err := ExportLibrary(data, selected, req.IncludeProgress, req.IncludeDocuments, func(fileID string) (string, bool) {
		content, err := s.store.Asset(ctx, fileID)
		if err != nil {
			missing = append(missing, fileID)
			return "", false
		}
		return content, true
	})
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		s.logger.Warn("exported files without stored content", "file_ids", missing)
	}

	return &svc.ExportResult{
		Filename: export.Filename(lib.Name, "json"),
		Library:  lib,
	}, nil
}

func (s *transferService) ExportWorkbook(ctx context.Context, req *svc.WorkbookRequest) (*svc.WorkbookResult, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.QuizIDs, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	lib, err := activeOf(data)
	if err != nil {
		return nil, err
	}

	quizzes, err := workbookQuizzes(lib, req.QuizIDs)
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = lib.Name
	}
	content, err := export.Workbook(title, quizzes)
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return &svc.WorkbookResult{
		Filename: export.Filename(title, "xlsx"),
		Content:  content,
	}, nil
}

// workbookQuizzes resolves the selection to quizzes in selection order. A
// selected folder contributes every quiz beneath it.
func workbookQuizzes(lib *models.Library, ids []string) ([]*models.Item, error) {
	var quizzes []*models.Item
	seen := map[string]bool{}
	add := func(quiz *models.Item) {
		if !seen[quiz.ID] {
			seen[quiz.ID] = true
			quizzes = append(quizzes, quiz)
		}
	}
	for _, id := range ids {
		item := FindItem(lib.Items, id)
		switch {
		case item == nil || item.Type == models.ItemDeck:
			return nil, errNotFound("quiz or folder", id)
		case item.IsFolder():
			for _, quiz := range FlattenQuizzes(item.Children) {
				add(quiz)
			}
		default:
			add(item)
		}
	}
	if len(quizzes) == 0 {
		return nil, errInvalid("the selected folders hold no quizzes")
	}
	return quizzes, nil
}

func (s *transferService) Import(ctx context.Context, req *svc.ImportRequest) (*models.Library, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Mode, validation.Required, validation.In(svc.ImportAsNew, svc.ImportInto)),
		validation.Field(&req.Data, validation.Required),
		validation.Field(&req.TargetLibraryID, validation.When(req.Mode == svc.ImportInto, validation.Required)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := validateImportTree(req.Data); err != nil {
		return nil, err
	}
	imported := s.sanitizeImport(req.Data)
	if len(req.SelectedIDs) > 0 {
		imported = FilterLibrary(imported, req.SelectedIDs, true)
	}
	for _, quiz := range FlattenQuizzes(imported.Items) {
		for _, q := range quiz.Questions {
			if q.ID == "" {
				return nil, domain.NewValidation("quiz %q has a question without id", quiz.Title)
			}
		}
	}

	var result *ImportResult
	_, err := s.store.Apply(ctx, func(data *models.AppData, now time.Time) (*Change, error) {
		var err error
		if req.Mode == svc.ImportAsNew {
			result, err = ImportAsNewLibrary(data, req.Name, imported, req.IncludeProgress, req.IncludeDocuments, now)
		} else {
			result, err = ImportIntoLibrary(data, req.TargetLibraryID, imported, req.IncludeProgress, req.IncludeDocuments)
		}
		if err != nil {
			return nil, err
		}
		return &Change{Data: result.Data, PutAssets: result.Assets}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("library imported",
		"mode", req.Mode,
		"library_id", result.Library.ID,
		"items", len(Flatten(imported.Items)),
		"assets", len(result.Assets),
		"request_id", httputil.RequestIDFrom(ctx),
	)
	return result.Library, nil
}

// sanitizeImport strips markup from the text of every imported quiz and deck
func (s *transferService) sanitizeImport(lib *models.Library) *models.Library {
	out := lib.Clone()
	for _, item := range Flatten(out.Items) {
		switch item.Type {
		case models.ItemFolder:
			item.Name = s.sanitizer.Text(item.Name)
		case models.ItemQuiz:
			item.Title = s.sanitizer.Text(item.Title)
			for i, q := range item.Questions {
				item.Questions[i] = s.sanitizer.Question(q)
			}
		case models.ItemDeck:
			item.Title = s.sanitizer.Text(item.Title)
			item.Cards = s.sanitizer.Cards(item.Cards)
		}
	}
	return out
}
