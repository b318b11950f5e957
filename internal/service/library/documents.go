package library

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	models "queenzz/internal/domain/models/library"
)

// FindDocument returns the document with the given id anywhere in the tree, or nil
func FindDocument(items []*models.DocumentItem, id string) *models.DocumentItem {
	for _, item := range items {
		if item.ID == id {
			return item
		}
		if item.Type == models.DocumentFolder {
			if found := FindDocument(item.Children, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// FlattenDocuments lists every document of the tree in depth-first pre-order
func FlattenDocuments(items []*models.DocumentItem) []*models.DocumentItem {
	var flat []*models.DocumentItem
	for _, item := range items {
		flat = append(flat, item)
		if item.Type == models.DocumentFolder {
			flat = append(flat, FlattenDocuments(item.Children)...)
		}
	}
	return flat
}

func isDocumentDescendant(parent *models.DocumentItem, targetID string) bool {
	for _, child := range parent.Children {
		if child.ID == targetID {
			return true
		}
		if child.Type == models.DocumentFolder && isDocumentDescendant(child, targetID) {
			return true
		}
	}
	return false
}

func insertDocuments(lib *models.Library, folderID *string, docs ...*models.DocumentItem) error {
	if folderID == nil {
		lib.Documents = append(append([]*models.DocumentItem{}, docs...), lib.Documents...)
		return nil
	}
	parent := FindDocument(lib.Documents, *folderID)
	if parent == nil {
		return errNotFound("document folder", *folderID)
	}
	if parent.Type != models.DocumentFolder {
		return errInvalid("document %q is not a folder", *folderID)
	}
	parent.Children = append(append([]*models.DocumentItem{}, docs...), parent.Children...)
	return nil
}

func addDocument(data *models.AppData, folderID *string, doc *models.DocumentItem) (*models.AppData, *models.DocumentItem, error) {
	doc.Name = strings.TrimSpace(doc.Name)
	if doc.Name == "" {
		return nil, nil, errInvalid("document name is required")
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	next, err := updateActive(data, func(lib *models.Library) error {
		if FindDocument(lib.Documents, doc.ID) != nil {
			return errInvalid("document id %q already exists", doc.ID)
		}
		return insertDocuments(lib, folderID, doc.Clone())
	})
	if err != nil {
		return nil, nil, err
	}
	return next, doc, nil
}

// AddDocumentFolder creates an empty document folder
func AddDocumentFolder(data *models.AppData, folderID *string, name string, now time.Time) (*models.AppData, *models.DocumentItem, error) {
	return addDocument(data, folderID, &models.DocumentItem{
		Type:      models.DocumentFolder,
		Name:      name,
		CreatedAt: now.UTC(),
		Children:  []*models.DocumentItem{},
	})
}

// AddDocumentFile records file metadata; the content goes to the asset store
// under the returned item's id
func AddDocumentFile(data *models.AppData, folderID *string, name, mimeType string, size int64, now time.Time) (*models.AppData, *models.DocumentItem, error) {
	return addDocument(data, folderID, &models.DocumentItem{
		Type:      models.DocumentFile,
		Name:      name,
		CreatedAt: now.UTC(),
		MimeType:  mimeType,
		Size:      size,
	})
}

// AddDocumentURL bookmarks an absolute http(s) url
func AddDocumentURL(data *models.AppData, folderID *string, name, rawURL string, now time.Time) (*models.AppData, *models.DocumentItem, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, nil, errInvalid("invalid url %q", rawURL)
	}
	if strings.TrimSpace(name) == "" {
		name = u.String()
	}
	return addDocument(data, folderID, &models.DocumentItem{
		Type:      models.DocumentURL,
		Name:      name,
		CreatedAt: now.UTC(),
		URL:       u.String(),
	})
}

// RenameDocument renames any document item
func RenameDocument(data *models.AppData, itemID, name string) (*models.AppData, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errInvalid("document name is required")
	}
	return updateActive(data, func(lib *models.Library) error {
		doc := FindDocument(lib.Documents, itemID)
		if doc == nil {
			return errNotFound("document", itemID)
		}
		doc.Name = name
		return nil
	})
}

func extractDocuments(items []*models.DocumentItem, ids map[string]bool) (kept, extracted []*models.DocumentItem) {
	kept = make([]*models.DocumentItem, 0, len(items))
	for _, item := range items {
		if ids[item.ID] {
			extracted = append(extracted, item)
			continue
		}
		if item.Type == models.DocumentFolder {
			var sub []*models.DocumentItem
			item.Children, sub = extractDocuments(item.Children, ids)
			extracted = append(extracted, sub...)
		}
		kept = append(kept, item)
	}
	return kept, extracted
}

// MoveDocuments moves the selected documents to the top of folderID (nil = root)
func MoveDocuments(data *models.AppData, itemIDs []string, folderID *string) (*models.AppData, error) {
	if len(itemIDs) == 0 {
		return nil, errInvalid("no documents selected")
	}
	ids := toSet(itemIDs)
	return updateActive(data, func(lib *models.Library) error {
		if folderID != nil {
			if ids[*folderID] {
				return errInvalidMove("target folder %q is part of the selection", *folderID)
			}
			target := FindDocument(lib.Documents, *folderID)
			if target == nil {
				return errNotFound("document folder", *folderID)
			}
			if target.Type != models.DocumentFolder {
				return errInvalidMove("target %q is not a folder", *folderID)
			}
			for id := range ids {
				selected := FindDocument(lib.Documents, id)
				if selected != nil && selected.Type == models.DocumentFolder && isDocumentDescendant(selected, *folderID) {
					return errInvalidMove("folder %q cannot be moved inside its own descendant %q", id, *folderID)
				}
			}
		}
		var moved []*models.DocumentItem
		lib.Documents, moved = extractDocuments(lib.Documents, ids)
		if len(moved) == 0 {
			return errNotFound("document", itemIDs[0])
		}
		return insertDocuments(lib, folderID, moved...)
	})
}

// DeleteDocuments removes the selected documents and returns the ids of every
// removed file, including files inside removed folders, so that their stored
// content can be dropped
func DeleteDocuments(data *models.AppData, itemIDs []string) (*models.AppData, []string, error) {
	ids := toSet(itemIDs)
	var fileIDs []string
	next, err := updateActive(data, func(lib *models.Library) error {
		var removed []*models.DocumentItem
		lib.Documents, removed = extractDocuments(lib.Documents, ids)
		for _, doc := range FlattenDocuments(removed) {
			if doc.Type == models.DocumentFile {
				fileIDs = append(fileIDs, doc.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return next, fileIDs, nil
}

// SortOrder orders document listings
type SortOrder string

const (
	SortDefault SortOrder = "default"
	SortAZ      SortOrder = "az"
	SortZA      SortOrder = "za"
)

// SortDocuments returns a sorted deep copy of the tree. Folders always come
// first; names compare case-insensitively. The default order keeps stored order.
func SortDocuments(items []*models.DocumentItem, order SortOrder) []*models.DocumentItem {
	sorted := models.CloneDocuments(items)
	if sorted == nil {
		sorted = []*models.DocumentItem{}
	}
	sortDocuments(sorted, order)
	return sorted
}

func sortDocuments(items []*models.DocumentItem, order SortOrder) {
	if order == SortAZ || order == SortZA {
		sort.SliceStable(items, func(i, j int) bool {
			fi, fj := items[i].Type == models.DocumentFolder, items[j].Type == models.DocumentFolder
			if fi != fj {
				return fi
			}
			a, b := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
			if order == SortZA {
				return a > b
			}
			return a < b
		})
	}
	for _, item := range items {
		if item.Type == models.DocumentFolder {
			sortDocuments(item.Children, order)
		}
	}
}
