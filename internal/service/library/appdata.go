package library

import (
	"strings"
	"time"

	"github.com/google/uuid"
	models "queenzz/internal/domain/models/library"
)

// DefaultLibraryName names the library created for a fresh install
const DefaultLibraryName = "Main Library"

// ImportedLibraryName is used when an imported library has no name at all
const ImportedLibraryName = "Imported Library"

// NewLibrary returns an empty library with every collection initialised
func NewLibrary(name string, now time.Time) *models.Library {
	return &models.Library{
		ID:                           uuid.NewString(),
		Name:                         name,
		CreatedAt:                    now.UTC(),
		Items:                        []*models.Item{},
		Documents:                    []*models.DocumentItem{},
		FailedQuestions:              []models.SRSEntry{},
		AnsweredQuestionIDs:          []string{},
		AllTimeFailedQuestionIDs:     []string{},
		AllTimeUnansweredQuestionIDs: []string{},
		FailedFlashcards:             []models.Flashcard{},
		Mnemonics:                    []models.MnemonicRule{},
		OpenFolderIDs:                []string{},
		StudyPlanSessions:            []models.StudyPlanSession{},
	}
}

// NewAppData returns the state of a fresh install: one active default library
func NewAppData(now time.Time) *models.AppData {
	lib := NewLibrary(DefaultLibraryName, now)
	return &models.AppData{
		ActiveLibraryID: lib.ID,
		Libraries:       map[string]*models.Library{lib.ID: lib},
	}
}

// MigrationResult is the outcome of Migrate
type MigrationResult struct {
	Data *models.AppData
	// Assets holds file contents lifted out of legacy inline storage, keyed by
	// file id. The caller must persist them to the asset store.
	Assets  map[string]string
	Changed bool
}

// Migrate brings a loaded snapshot up to the current shape. A nil snapshot or
// one without libraries is replaced by a fresh install.
func Migrate(raw *models.AppData, now time.Time) MigrationResult {
	if raw == nil || len(raw.Libraries) == 0 {
		return MigrationResult{Data: NewAppData(now), Assets: map[string]string{}, Changed: true}
	}

	data := raw.Clone()
	result := MigrationResult{Data: data, Assets: map[string]string{}}

	for id, lib := range data.Libraries {
		if lib == nil {
			delete(data.Libraries, id)
			result.Changed = true
			continue
		}
		if migrateLegacyDocuments(lib, result.Assets) {
			result.Changed = true
		}
		if normalize(lib) {
			result.Changed = true
		}
	}

	if len(data.Libraries) == 0 {
		return MigrationResult{Data: NewAppData(now), Assets: map[string]string{}, Changed: true}
	}
	if data.Active() == nil {
		data.ActiveLibraryID = data.SortedLibraries()[0].ID
		result.Changed = true
	}
	return result
}

// migrateLegacyDocuments moves storedFiles/storedURLs into the document tree
func migrateLegacyDocuments(lib *models.Library, assets map[string]string) bool {
	if lib.StoredFiles == nil && lib.StoredURLs == nil {
		return false
	}
	if lib.Documents == nil {
		docs := make([]*models.DocumentItem, 0, len(lib.StoredFiles)+len(lib.StoredURLs))
		for _, f := range lib.StoredFiles {
			docs = append(docs, &models.DocumentItem{
				Type:      models.DocumentFile,
				ID:        f.ID,
				Name:      f.Name,
				CreatedAt: f.CreatedAt,
				MimeType:  f.MimeType,
				Size:      f.Size,
			})
			if f.Base64Content != "" {
				assets[f.ID] = f.Base64Content
			}
		}
		for _, u := range lib.StoredURLs {
			docs = append(docs, &models.DocumentItem{
				Type:      models.DocumentURL,
				ID:        u.ID,
				Name:      u.Name,
				CreatedAt: u.CreatedAt,
				URL:       u.URL,
			})
		}
		lib.Documents = docs
	}
	lib.StoredFiles = nil
	lib.StoredURLs = nil
	return true
}

// normalize replaces nil collections with empty ones
func normalize(lib *models.Library) bool {
	changed := false
	if lib.Items == nil {
		lib.Items, changed = []*models.Item{}, true
	}
	if lib.Documents == nil {
		lib.Documents, changed = []*models.DocumentItem{}, true
	}
	if lib.FailedQuestions == nil {
		lib.FailedQuestions, changed = []models.SRSEntry{}, true
	}
	if lib.AnsweredQuestionIDs == nil {
		lib.AnsweredQuestionIDs, changed = []string{}, true
	}
	if lib.AllTimeFailedQuestionIDs == nil {
		lib.AllTimeFailedQuestionIDs, changed = []string{}, true
	}
	if lib.AllTimeUnansweredQuestionIDs == nil {
		lib.AllTimeUnansweredQuestionIDs, changed = []string{}, true
	}
	if lib.FailedFlashcards == nil {
		lib.FailedFlashcards, changed = []models.Flashcard{}, true
	}
	if lib.Mnemonics == nil {
		lib.Mnemonics, changed = []models.MnemonicRule{}, true
	}
	if lib.OpenFolderIDs == nil {
		lib.OpenFolderIDs, changed = []string{}, true
	}
	if lib.StudyPlanSessions == nil {
		lib.StudyPlanSessions, changed = []models.StudyPlanSession{}, true
	}
	return changed
}

// updateActive clones data and applies fn to the active library of the clone
func updateActive(data *models.AppData, fn func(lib *models.Library) error) (*models.AppData, error) {
	next := data.Clone()
	active := next.Active()
	if active == nil {
		return nil, ErrNoActiveLibrary
	}
	if err := fn(active); err != nil {
		return nil, err
	}
	return next, nil
}

// CreateLibrary adds an empty library and makes it active
func CreateLibrary(data *models.AppData, name string, now time.Time) (*models.AppData, *models.Library, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, errInvalid("library name is required")
	}
	next := data.Clone()
	if next.Libraries == nil {
		next.Libraries = map[string]*models.Library{}
	}
	lib := NewLibrary(name, now)
	next.Libraries[lib.ID] = lib
	next.ActiveLibraryID = lib.ID
	return next, lib, nil
}

// RenameLibrary renames the active library
func RenameLibrary(data *models.AppData, name string) (*models.AppData, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errInvalid("library name is required")
	}
	return updateActive(data, func(lib *models.Library) error {
		lib.Name = name
		return nil
	})
}

// DeleteActiveLibrary removes the active library. The last library cannot be
// deleted; the oldest remaining library becomes active.
func DeleteActiveLibrary(data *models.AppData) (*models.AppData, error) {
	if data.Active() == nil {
		return nil, ErrNoActiveLibrary
	}
	if len(data.Libraries) <= 1 {
		return nil, errInvalid("the last library cannot be deleted")
	}
	next := data.Clone()
	delete(next.Libraries, next.ActiveLibraryID)
	next.ActiveLibraryID = next.SortedLibraries()[0].ID
	return next, nil
}

// SwitchLibrary makes libraryID active
func SwitchLibrary(data *models.AppData, libraryID string) (*models.AppData, error) {
	if _, ok := data.Libraries[libraryID]; !ok {
		return nil, errNotFound("library", libraryID)
	}
	next := data.Clone()
	next.ActiveLibraryID = libraryID
	return next, nil
}

// ResetProgress clears all study progress of a library, keeping its content
func ResetProgress(data *models.AppData, libraryID string) (*models.AppData, error) {
	if _, ok := data.Libraries[libraryID]; !ok {
		return nil, errNotFound("library", libraryID)
	}
	next := data.Clone()
	lib := next.Libraries[libraryID]
	clearProgress(lib)
	for _, quiz := range FlattenQuizzes(lib.Items) {
		quiz.ScoreHistory = []models.ScoreRecord{}
		quiz.CompletionCount = 0
	}
	return next, nil
}

func clearProgress(lib *models.Library) {
	lib.AnsweredQuestionIDs = []string{}
	lib.FailedQuestions = []models.SRSEntry{}
	lib.AllTimeFailedQuestionIDs = []string{}
	lib.AllTimeUnansweredQuestionIDs = []string{}
	lib.FailedFlashcards = []models.Flashcard{}
	lib.PausedQuiz = nil
}
