package library

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"queenzz/internal/config"
	"queenzz/internal/domain"
	models "queenzz/internal/domain/models/library"
	svc "queenzz/internal/domain/services/library"
)

type itemService struct {
	store     *Store
	sanitizer *TextSanitizer
	logger    *slog.Logger
}

// NewItemService creates a new item service
func NewItemService(store *Store, sanitizer *TextSanitizer, logger *slog.Logger) svc.ItemService {
	return &itemService{store: store, sanitizer: sanitizer, logger: logger}
}

func (s *itemService) GetItem(ctx context.Context, itemID string) (*models.Item, error) {
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	lib, err := activeOf(data)
	if err != nil {
		return nil, err
	}
	item := FindItem(lib.Items, itemID)
	if item == nil {
		return nil, errNotFound("item", itemID)
	}
	return item, nil
}

func (s *itemService) AddFolder(ctx context.Context, req *svc.AddFolderRequest) (*models.Item, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, config.MaxItemNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var folder *models.Item
	_, err := s.store.Update(ctx, func(data *models.AppData, _ time.Time) (*models.AppData, error) {
		next, created, err := AddFolder(data, req.ParentID, s.sanitizer.Text(req.Name))
		folder = created
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *itemService) AddQuizzes(ctx context.Context, req *svc.AddQuizzesRequest) ([]*models.Item, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Quizzes, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	generated := make([]models.GeneratedQuiz, len(req.Quizzes))
	for i, g := range req.Quizzes {
		g = s.sanitizer.Quiz(g)
		for _, q := range g.Questions {
			if err := ValidateQuestion(q); err != nil {
				return nil, fmt.Errorf("quiz %q: %w", g.Title, err)
			}
		}
		generated[i] = g
	}

	var created []*models.Item
	_, err := s.store.Update(ctx, func(data *models.AppData, now time.Time) (*models.AppData, error) {
		next, items, err := AddQuizzes(data, req.ParentID, generated, now)
		created = items
		return next, err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quizzes added", "generated", len(generated), "stored", len(created))
	return created, nil
}

func (s *itemService) AddDeck(ctx context.Context, req *svc.AddDeckRequest) (*models.Item, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(1, config.MaxItemNameLength)),
		validation.Field(&req.Cards, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var deck *models.Item
	_, err := s.store.Update(ctx, func(data *models.AppData, now time.Time) (*models.AppData, error) {
		next, created, err := AddDeck(data, req.ParentID, s.sanitizer.Text(req.Title), s.sanitizer.Cards(req.Cards), now)
		deck = created
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return deck, nil
}

func (s *itemService) MoveItems(ctx context.Context, req *svc.MoveItemsRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.IDs, validation.Required),
	); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	_, err := s.store.Update(ctx, func(data *models.AppData, _ time.Time) (*models.AppData, error) {
		return MoveItems(data, req.IDs, req.TargetID)
	})
	return err
}

func (s *itemService) DeleteItems(ctx context.Context, req *svc.SelectionRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.IDs, validation.Required),
	); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	_, err := s.store.Apply(ctx, func(data *models.AppData, _ time.Time) (*Change, error) {
		before, err := activeOf(data)
		if err != nil {
			return nil, err
		}
		next, err := DeleteItems(data, req.IDs)
		if err != nil {
			return nil, err
		}
		return &Change{Data: next, DropAssets: removedQuestionAssets(before, next)}, nil
	})
	return err
}

func (s *itemService) RenameItem(ctx context.Context, itemID string, req *svc.RenameItemRequest) (*models.Item, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, config.MaxItemNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	data, err := s.store.Update(ctx, func(data *models.AppData, _ time.Time) (*models.AppData, error) {
		return RenameItem(data, itemID, s.sanitizer.Text(req.Name))
	})
	if err != nil {
		return nil, err
	}
	return FindItem(data.Active().Items, itemID), nil
}

func (s *itemService) ToggleFolder(ctx context.Context, folderID string) ([]string, error) {
	data, err := s.store.Update(ctx, func(data *models.AppData, _ time.Time) (*models.AppData, error) {
		lib, err := activeOf(data)
		if err != nil {
			return nil, err
		}
		if !FindItem(lib.Items, folderID).IsFolder() {
			return nil, errNotFound("folder", folderID)
		}
		return ToggleFolder(data, folderID)
	})
	if err != nil {
		return nil, err
	}
	return data.Active().OpenFolderIDs, nil
}

func (s *itemService) UpdateQuestion(ctx context.Context, q *models.Question) (*models.Question, error) {
	if err := validation.ValidateStruct(q,
		validation.Field(&q.ID, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	clean := s.sanitizer.Question(*q)
	_, err := s.store.Update(ctx, func(data *models.AppData, _ time.Time) (*models.AppData, error) {
		return UpdateQuestion(data, clean)
	})
	if err != nil {
		return nil, err
	}
	return &clean, nil
}

func (s *itemService) MoveQuestions(ctx context.Context, req *svc.MoveQuestionsRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.IDs, validation.Required),
		validation.Field(&req.TargetQuizID, validation.Required),
	); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	_, err := s.store.Update(ctx, func(data *models.AppData, _ time.Time) (*models.AppData, error) {
		return MoveQuestions(data, req.IDs, req.TargetQuizID)
	})
	return err
}

func (s *itemService) DeleteQuestions(ctx context.Context, req *svc.SelectionRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.IDs, validation.Required),
	); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	_, err := s.store.Apply(ctx, func(data *models.AppData, _ time.Time) (*Change, error) {
		before, err := activeOf(data)
		if err != nil {
			return nil, err
		}
		next, err := DeleteQuestions(data, req.IDs)
		if err != nil {
			return nil, err
		}
		return &Change{Data: next, DropAssets: removedQuestionAssets(before, next)}, nil
	})
	return err
}

func (s *itemService) FlagQuestions(ctx context.Context, req *svc.FlagQuestionsRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.IDs, validation.Required),
	); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	_, err := s.store.Update(ctx, func(data *models.AppData, _ time.Time) (*models.AppData, error) {
		return FlagQuestions(data, req.IDs, req.Flag)
	})
	return err
}

func (s *itemService) SearchQuestions(ctx context.Context, params *models.SearchParams) ([]models.Question, error) {
	if params.Flag != "" && params.Flag != "all" && !models.Flag(params.Flag).Valid() {
		return nil, domain.NewValidation("unknown flag %q", params.Flag)
	}
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	lib, err := activeOf(data)
	if err != nil {
		return nil, err
	}
	return SearchQuestions(lib, *params), nil
}

func (s *itemService) DuplicateQuestions(ctx context.Context, req *svc.DuplicatesRequest) ([][]models.Question, error) {
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	lib, err := activeOf(data)
	if err != nil {
		return nil, err
	}
	return DuplicateQuestions(lib, req.QuizIDs), nil
}

func questionImageKey(questionID string, kind svc.ImageKind) (string, error) {
	switch kind {
	case svc.ImageQuestion:
		return questionImagePrefix + questionID, nil
	case svc.ImageSource:
		return sourceImagePrefix + questionID, nil
	}
	return "", domain.NewValidation("unknown image kind %q", kind)
}

func (s *itemService) PutQuestionImage(ctx context.Context, questionID string, kind svc.ImageKind, base64Content string) error {
	key, err := questionImageKey(questionID, kind)
	if err != nil {
		return err
	}
	if err := validateBase64(base64Content); err != nil {
		return err
	}
	_, err = s.store.Apply(ctx, func(data *models.AppData, _ time.Time) (*Change, error) {
		lib, err := activeOf(data)
		if err != nil {
			return nil, err
		}
		if _, _, ok := FindQuestion(lib.Items, questionID); !ok {
			return nil, errNotFound("question", questionID)
		}
		return &Change{Data: data, PutAssets: map[string]string{key: base64Content}}, nil
	})
	return err
}

func (s *itemService) QuestionImage(ctx context.Context, questionID string, kind svc.ImageKind) (string, error) {
	key, err := questionImageKey(questionID, kind)
	if err != nil {
		return "", err
	}
	return s.store.Asset(ctx, key)
}

// removedQuestionAssets lists the image keys of questions of before that no
// library of next holds anymore
func removedQuestionAssets(before *models.Library, next *models.AppData) []string {
	kept := map[string]bool{}
	for _, lib := range next.Libraries {
		for _, quiz := range FlattenQuizzes(lib.Items) {
			for _, q := range quiz.Questions {
				kept[q.ID] = true
			}
		}
	}
	var keys []string
	for _, quiz := range FlattenQuizzes(before.Items) {
		for _, q := range quiz.Questions {
			if !kept[q.ID] {
				keys = append(keys, questionImagePrefix+q.ID, sourceImagePrefix+q.ID)
			}
		}
	}
	return keys
}

// validateBase64 rejects content that is not standard base64 or exceeds the upload limit
func validateBase64(content string) error {
	if content == "" {
		return domain.NewValidation("content is required")
	}
	if base64.StdEncoding.DecodedLen(len(content)) > config.MaxUploadBytes {
		return domain.NewValidation("content exceeds %d bytes", config.MaxUploadBytes)
	}
	if _, err := base64.StdEncoding.DecodeString(content); err != nil {
		return domain.NewValidation("content is not valid base64")
	}
	return nil
}
