package library

import (
	"strings"
	"time"

	"github.com/google/uuid"
	models "queenzz/internal/domain/models/library"
)

// FilterLibrary returns a copy of lib whose tree keeps only the selected items.
// Ancestors of a selected item survive with just the matching branch; a
// selected folder keeps its whole subtree. Without progress, the SRS queue,
// the progress sets and every score history are stripped.
func FilterLibrary(lib *models.Library, selectedIDs []string, includeProgress bool) *models.Library {
	out := lib.Clone()
	out.Items = filterItems(out.Items, toSet(selectedIDs))
	if !includeProgress {
		stripProgress(out)
	}
	return out
}

func filterItems(items []*models.Item, ids map[string]bool) []*models.Item {
	kept := []*models.Item{}
	for _, item := range items {
		if ids[item.ID] {
			kept = append(kept, item)
			continue
		}
		if item.IsFolder() {
			if children := filterItems(item.Children, ids); len(children) > 0 {
				item.Children = children
				kept = append(kept, item)
			}
		}
	}
	return kept
}

func stripProgress(lib *models.Library) {
	clearProgress(lib)
	eachQuiz(lib.Items, func(quiz *models.Item) {
		quiz.ScoreHistory = nil
		quiz.CompletionCount = 0
	})
}

// ExportLibrary builds the payload of a JSON export of the active library.
// When documents are included, content returns the stored base64 bytes of a
// file; files without stored content are exported as metadata only.
func ExportLibrary(data *models.AppData, selectedIDs []string, includeProgress, includeDocuments bool, content func(fileID string) (string, bool)) (*models.Library, error) {
	active := data.Active()
	if active == nil {
		return nil, ErrNoActiveLibrary
	}
	out := FilterLibrary(active, selectedIDs, includeProgress)
	if !includeDocuments {
		out.Documents = []*models.DocumentItem{}
		return out, nil
	}
	for _, doc := range FlattenDocuments(out.Documents) {
		if doc.Type != models.DocumentFile {
			continue
		}
		if b64, ok := content(doc.ID); ok {
			doc.Base64Content = b64
		}
	}
	return out, nil
}

// extractDocumentContents gives every imported document a fresh id, since
// asset keys are global, and lifts inline file content out of the tree
func extractDocumentContents(docs []*models.DocumentItem, assets map[string]string) []*models.DocumentItem {
	out := models.CloneDocuments(docs)
	if out == nil {
		return []*models.DocumentItem{}
	}
	for _, doc := range FlattenDocuments(out) {
		doc.ID = uuid.NewString()
		if doc.Base64Content != "" {
			assets[doc.ID] = doc.Base64Content
			doc.Base64Content = ""
		}
	}
	return out
}

// inlineLegacyDocuments converts legacy storage of an imported library into
// documents, keeping file content inline until extractDocumentContents runs
func inlineLegacyDocuments(lib *models.Library) {
	legacy := map[string]string{}
	if !migrateLegacyDocuments(lib, legacy) {
		return
	}
	for _, doc := range FlattenDocuments(lib.Documents) {
		if b64, ok := legacy[doc.ID]; ok && doc.Base64Content == "" {
			doc.Base64Content = b64
		}
	}
}

// validateImportTree rejects null nodes and unknown node types anywhere in
// an imported tree or document tree
func validateImportTree(lib *models.Library) error {
	if err := validateImportItems(lib.Items); err != nil {
		return err
	}
	return validateImportDocuments(lib.Documents)
}

func validateImportItems(items []*models.Item) error {
	for i, item := range items {
		if item == nil {
			return errInvalid("library item %d is null", i)
		}
		switch item.Type {
		case models.ItemFolder:
			if err := validateImportItems(item.Children); err != nil {
				return err
			}
		case models.ItemQuiz, models.ItemDeck:
		default:
			return errInvalid("library item %q has unknown type %q", item.ID, item.Type)
		}
	}
	return nil
}

func validateImportDocuments(docs []*models.DocumentItem) error {
	for i, doc := range docs {
		if doc == nil {
			return errInvalid("document %d is null", i)
		}
		switch doc.Type {
		case models.DocumentFolder:
			if err := validateImportDocuments(doc.Children); err != nil {
				return err
			}
		case models.DocumentFile, models.DocumentURL:
		default:
			return errInvalid("document %q has unknown type %q", doc.ID, doc.Type)
		}
	}
	return nil
}

// rekeyItems gives a fresh id to every item whose id is blank or already in
// taken, and records the final ids in taken
func rekeyItems(items []*models.Item, taken map[string]bool) {
	for _, item := range Flatten(items) {
		if item.ID == "" || taken[item.ID] {
			item.ID = uuid.NewString()
		}
		taken[item.ID] = true
	}
}

// ImportResult is the outcome of an import. Assets holds file contents keyed
// by their new file id; the caller must persist them.
type ImportResult struct {
	Data    *models.AppData
	Library *models.Library
	Assets  map[string]string
}

// ImportAsNewLibrary adds the imported library under a fresh id and makes it
// active. name overrides the imported name when not blank. Blank or repeated
// item ids are re-keyed.
func ImportAsNewLibrary(data *models.AppData, name string, imported *models.Library, includeProgress, includeDocuments bool, now time.Time) (*ImportResult, error) {
	if imported == nil {
		return nil, errInvalid("nothing to import")
	}
	if err := validateImportTree(imported); err != nil {
		return nil, err
	}
	lib := imported.Clone()
	lib.ID = uuid.NewString()
	lib.CreatedAt = now.UTC()
	switch {
	case strings.TrimSpace(name) != "":
		lib.Name = strings.TrimSpace(name)
	case strings.TrimSpace(lib.Name) == "":
		lib.Name = ImportedLibraryName
	}

	assets := map[string]string{}
	inlineLegacyDocuments(lib)
	if includeDocuments {
		lib.Documents = extractDocumentContents(lib.Documents, assets)
	} else {
		lib.Documents = []*models.DocumentItem{}
	}
	if !includeProgress {
		stripProgress(lib)
	}
	normalize(lib)
	rekeyItems(lib.Items, map[string]bool{})

	next := data.Clone()
	if next.Libraries == nil {
		next.Libraries = map[string]*models.Library{}
	}
	next.Libraries[lib.ID] = lib
	next.ActiveLibraryID = lib.ID
	return &ImportResult{Data: next, Library: lib, Assets: assets}, nil
}

// ImportIntoLibrary prepends the imported tree (and documents) to an existing
// library. Imported items whose ids are blank, repeated or already exist in
// the target get fresh ids. With progress, the id sets are unioned and SRS entries and failed
// flashcards are merged keeping the target's entry on conflict.
func ImportIntoLibrary(data *models.AppData, targetID string, imported *models.Library, includeProgress, includeDocuments bool) (*ImportResult, error) {
	if imported == nil {
		return nil, errInvalid("nothing to import")
	}
	if err := validateImportTree(imported); err != nil {
		return nil, err
	}
	if _, ok := data.Libraries[targetID]; !ok {
		return nil, errNotFound("library", targetID)
	}
	src := imported.Clone()
	next := data.Clone()
	target := next.Libraries[targetID]
	normalize(target)

	assets := map[string]string{}
	if includeDocuments {
		inlineLegacyDocuments(src)
		docs := extractDocumentContents(src.Documents, assets)
		target.Documents = append(docs, target.Documents...)
	}

	rekeyItems(src.Items, CollectIDs(target.Items))
	if !includeProgress {
		eachQuiz(src.Items, func(quiz *models.Item) {
			quiz.ScoreHistory = nil
			quiz.CompletionCount = 0
		})
	}
	target.Items = append(src.Items, target.Items...)

	if includeProgress {
		target.AnsweredQuestionIDs = union(target.AnsweredQuestionIDs, src.AnsweredQuestionIDs)
		target.AllTimeFailedQuestionIDs = union(target.AllTimeFailedQuestionIDs, src.AllTimeFailedQuestionIDs)
		target.AllTimeUnansweredQuestionIDs = union(target.AllTimeUnansweredQuestionIDs, src.AllTimeUnansweredQuestionIDs)

		queued := make(map[string]bool, len(target.FailedQuestions))
		for _, e := range target.FailedQuestions {
			queued[e.Question.ID] = true
		}
		for _, e := range src.FailedQuestions {
			if !queued[e.Question.ID] {
				queued[e.Question.ID] = true
				target.FailedQuestions = append(target.FailedQuestions, e)
			}
		}

		failed := make(map[string]bool, len(target.FailedFlashcards))
		for _, c := range target.FailedFlashcards {
			failed[c.ID] = true
		}
		for _, c := range src.FailedFlashcards {
			if !failed[c.ID] {
				failed[c.ID] = true
				target.FailedFlashcards = append(target.FailedFlashcards, c)
			}
		}
	}
	return &ImportResult{Data: next, Library: target, Assets: assets}, nil
}

func union(a, b []string) []string {
	set := newOrderedSet(a)
	for _, id := range b {
		set.add(id)
	}
	return set.list()
}
