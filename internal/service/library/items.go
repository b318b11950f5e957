package library

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"queenzz/internal/config"
	models "queenzz/internal/domain/models/library"
)

// insertInto prepends items to the folder parentID, or to the root when parentID is nil
func insertInto(lib *models.Library, parentID *string, items ...*models.Item) error {
	if parentID == nil {
		lib.Items = append(append([]*models.Item{}, items...), lib.Items...)
		return nil
	}
	parent := FindItem(lib.Items, *parentID)
	if parent == nil {
		return errNotFound("folder", *parentID)
	}
	if !parent.IsFolder() {
		return errInvalid("item %q is not a folder", *parentID)
	}
	parent.Children = append(append([]*models.Item{}, items...), parent.Children...)
	return nil
}

// AddFolder creates an empty folder at the top of parentID (nil = root)
func AddFolder(data *models.AppData, parentID *string, name string) (*models.AppData, *models.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, errInvalid("folder name is required")
	}
	folder := &models.Item{
		Type:     models.ItemFolder,
		ID:       uuid.NewString(),
		Name:     name,
		Children: []*models.Item{},
	}
	next, err := updateActive(data, func(lib *models.Library) error {
		return insertInto(lib, parentID, folder)
	})
	if err != nil {
		return nil, nil, err
	}
	return next, folder, nil
}

// SplitQuiz cuts a generated quiz into parts of at most MaxQuestionsPerQuiz
// questions titled "<title> (Part n)". A quiz that fits is returned as is.
func SplitQuiz(quiz models.GeneratedQuiz) []models.GeneratedQuiz {
	size := config.MaxQuestionsPerQuiz
	if len(quiz.Questions) <= size {
		return []models.GeneratedQuiz{quiz}
	}
	var parts []models.GeneratedQuiz
	for start := 0; start < len(quiz.Questions); start += size {
		end := min(start+size, len(quiz.Questions))
		parts = append(parts, models.GeneratedQuiz{
			Title:     fmt.Sprintf("%s (Part %d)", quiz.Title, len(parts)+1),
			Questions: quiz.Questions[start:end],
		})
	}
	return parts
}

// AddQuizzes stores generated quizzes under parentID (nil = root), splitting
// oversized ones. Questions without an id get one.
func AddQuizzes(data *models.AppData, parentID *string, generated []models.GeneratedQuiz, now time.Time) (*models.AppData, []*models.Item, error) {
	var created []*models.Item
	for _, g := range generated {
		if strings.TrimSpace(g.Title) == "" {
			return nil, nil, errInvalid("quiz title is required")
		}
		for _, part := range SplitQuiz(g) {
			questions := make([]models.Question, len(part.Questions))
			for i, q := range part.Questions {
				q = q.Clone()
				if q.ID == "" {
					q.ID = uuid.NewString()
				}
				q.QuizID, q.QuizTitle = "", ""
				questions[i] = q
			}
			created = append(created, &models.Item{
				Type:         models.ItemQuiz,
				ID:           uuid.NewString(),
				Title:        strings.TrimSpace(part.Title),
				CreatedAt:    now.UTC(),
				Questions:    questions,
				ScoreHistory: []models.ScoreRecord{},
			})
		}
	}
	if len(created) == 0 {
		return nil, nil, errInvalid("no quizzes to add")
	}

	next, err := updateActive(data, func(lib *models.Library) error {
		return insertInto(lib, parentID, models.CloneItems(created)...)
	})
	if err != nil {
		return nil, nil, err
	}
	return next, created, nil
}

// AddDeck stores a flashcard deck under parentID (nil = root)
func AddDeck(data *models.AppData, parentID *string, title string, cards []models.Flashcard, now time.Time) (*models.AppData, *models.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil, errInvalid("deck title is required")
	}
	deck := &models.Item{
		Type:      models.ItemDeck,
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now.UTC(),
		Cards:     make([]models.Flashcard, len(cards)),
	}
	for i, c := range cards {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		deck.Cards[i] = c
	}
	next, err := updateActive(data, func(lib *models.Library) error {
		return insertInto(lib, parentID, deck.Clone())
	})
	if err != nil {
		return nil, nil, err
	}
	return next, deck, nil
}

// MoveItems moves the selected items to the top of targetFolderID (nil = root),
// preserving their relative pre-order. A folder is never moved into itself or
// one of its descendants.
func MoveItems(data *models.AppData, itemIDs []string, targetFolderID *string) (*models.AppData, error) {
	if len(itemIDs) == 0 {
		return nil, errInvalid("no items selected")
	}
	ids := toSet(itemIDs)
	return updateActive(data, func(lib *models.Library) error {
		if targetFolderID != nil {
			if err := validateMoveTarget(lib.Items, ids, *targetFolderID); err != nil {
				return err
			}
		}
		var moved []*models.Item
		lib.Items, moved = extractItems(lib.Items, ids)
		if len(moved) == 0 {
			return errNotFound("item", itemIDs[0])
		}
		return insertInto(lib, targetFolderID, moved...)
	})
}

// DeleteItems removes the selected items (and the subtrees of selected folders)
func DeleteItems(data *models.AppData, itemIDs []string) (*models.AppData, error) {
	ids := toSet(itemIDs)
	return updateActive(data, func(lib *models.Library) error {
		lib.Items, _ = extractItems(lib.Items, ids)
		open := make([]string, 0, len(lib.OpenFolderIDs))
		for _, id := range lib.OpenFolderIDs {
			if !ids[id] && FindItem(lib.Items, id) != nil {
				open = append(open, id)
			}
		}
		lib.OpenFolderIDs = open
		return nil
	})
}

// RenameItem renames a folder or retitles a quiz or deck
func RenameItem(data *models.AppData, itemID, name string) (*models.AppData, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errInvalid("name is required")
	}
	return updateActive(data, func(lib *models.Library) error {
		item := FindItem(lib.Items, itemID)
		if item == nil {
			return errNotFound("item", itemID)
		}
		if item.IsFolder() {
			item.Name = name
		} else {
			item.Title = name
		}
		return nil
	})
}

// ToggleFolder flips the open/closed state of a folder in the browser view
func ToggleFolder(data *models.AppData, folderID string) (*models.AppData, error) {
	return updateActive(data, func(lib *models.Library) error {
		for i, id := range lib.OpenFolderIDs {
			if id == folderID {
				lib.OpenFolderIDs = append(lib.OpenFolderIDs[:i], lib.OpenFolderIDs[i+1:]...)
				return nil
			}
		}
		lib.OpenFolderIDs = append(lib.OpenFolderIDs, folderID)
		return nil
	})
}
