package library

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"queenzz/internal/config"
	"queenzz/internal/domain"
	models "queenzz/internal/domain/models/library"
	svc "queenzz/internal/domain/services/library"
)

type documentService struct {
	store  *Store
	logger *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(store *Store, logger *slog.Logger) svc.DocumentService {
	return &documentService{store: store, logger: logger}
}

func (s *documentService) ListDocuments(ctx context.Context, order string) ([]*models.DocumentItem, error) {
	sortOrder := SortOrder(order)
	if order == "" {
		sortOrder = SortDefault
	}
	if err := validation.Validate(sortOrder, validation.In(SortDefault, SortAZ, SortZA)); err != nil {
		return nil, fmt.Errorf("%w: sort: %v", domain.ErrValidation, err)
	}
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	lib, err := activeOf(data)
	if err != nil {
		return nil, err
	}
	return SortDocuments(lib.Documents, sortOrder), nil
}

func (s *documentService) AddFolder(ctx context.Context, req *svc.AddDocumentFolderRequest) (*models.DocumentItem, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, config.MaxDocumentNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	var folder *models.DocumentItem
	_, err := s.store.Update(ctx, func(data *models.AppData, now time.Time) (*models.AppData, error) {
		next, created, err := AddDocumentFolder(data, req.FolderID, req.Name, now)
		folder = created
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *documentService) AddFile(ctx context.Context, req *svc.AddDocumentFileRequest) (*models.DocumentItem, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, config.MaxDocumentNameLength)),
		validation.Field(&req.MimeType, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := validateBase64(req.Base64Content); err != nil {
		return nil, err
	}
	raw, _ := base64.StdEncoding.DecodeString(req.Base64Content)

	var file *models.DocumentItem
	_, err := s.store.Apply(ctx, func(data *models.AppData, now time.Time) (*Change, error) {
		next, created, err := AddDocumentFile(data, req.FolderID, req.Name, req.MimeType, int64(len(raw)), now)
		if err != nil {
			return nil, err
		}
		file = created
		return &Change{Data: next, PutAssets: map[string]string{created.ID: req.Base64Content}}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document file stored", "document_id", file.ID, "size", file.Size, "mime_type", file.MimeType)
	return file, nil
}

func (s *documentService) AddURL(ctx context.Context, req *svc.AddDocumentURLRequest) (*models.DocumentItem, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.URL, validation.Required, is.URL),
		validation.Field(&req.Name, validation.RuneLength(0, config.MaxDocumentNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	var bookmark *models.DocumentItem
	_, err := s.store.Update(ctx, func(data *models.AppData, now time.Time) (*models.AppData, error) {
		next, created, err := AddDocumentURL(data, req.FolderID, req.Name, req.URL, now)
		bookmark = created
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (s *documentService) Rename(ctx context.Context, docID string, req *svc.RenameItemRequest) (*models.DocumentItem, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, config.MaxDocumentNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	data, err := s.store.Update(ctx, func(data *models.AppData, _ time.Time) (*models.AppData, error) {
		return RenameDocument(data, docID, req.Name)
	})
	if err != nil {
		return nil, err
	}
	return FindDocument(data.Active().Documents, docID), nil
}

func (s *documentService) Move(ctx context.Context, req *svc.MoveItemsRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.IDs, validation.Required),
	); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	_, err := s.store.Update(ctx, func(data *models.AppData, _ time.Time) (*models.AppData, error) {
		return MoveDocuments(data, req.IDs, req.TargetID)
	})
	return err
}

func (s *documentService) Delete(ctx context.Context, req *svc.SelectionRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.IDs, validation.Required),
	); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	var removed int
	_, err := s.store.Apply(ctx, func(data *models.AppData, _ time.Time) (*Change, error) {
		next, fileIDs, err := DeleteDocuments(data, req.IDs)
		if err != nil {
			return nil, err
		}
		removed = len(fileIDs)
		return &Change{Data: next, DropAssets: fileIDs}, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("documents deleted", "selected", len(req.IDs), "files_removed", removed)
	return nil
}

func (s *documentService) FileContent(ctx context.Context, fileID string) (*models.DocumentItem, string, error) {
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, "", err
	}
	lib, err := activeOf(data)
	if err != nil {
		return nil, "", err
	}
	doc := FindDocument(lib.Documents, fileID)
	if doc == nil || doc.Type != models.DocumentFile {
		return nil, "", errNotFound("file", fileID)
	}
	content, err := s.store.Asset(ctx, fileID)
	if err != nil {
		return nil, "", err
	}
	return doc, content, nil
}
