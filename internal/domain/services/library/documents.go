package library

import (
	"context"

	models "queenzz/internal/domain/models/library"
)

// DocumentService manages the document tree of the active library. File
// contents live in the asset store under the file id.
type DocumentService interface {
	ListDocuments(ctx context.Context, order string) ([]*models.DocumentItem, error)
	AddFolder(ctx context.Context, req *AddDocumentFolderRequest) (*models.DocumentItem, error)
	AddFile(ctx context.Context, req *AddDocumentFileRequest) (*models.DocumentItem, error)
	AddURL(ctx context.Context, req *AddDocumentURLRequest) (*models.DocumentItem, error)
	Rename(ctx context.Context, docID string, req *RenameItemRequest) (*models.DocumentItem, error)
	Move(ctx context.Context, req *MoveItemsRequest) error

	// Delete removes documents and the stored content of every removed file
	Delete(ctx context.Context, req *SelectionRequest) error

	// FileContent returns a file's metadata and its base64 content
	FileContent(ctx context.Context, fileID string) (*models.DocumentItem, string, error)
}

// AddDocumentFolderRequest creates a document folder
type AddDocumentFolderRequest struct {
	FolderID *string `json:"folderId,omitempty"`
	Name     string  `json:"name"`
}

// AddDocumentFileRequest uploads a file as base64
type AddDocumentFileRequest struct {
	FolderID      *string `json:"folderId,omitempty"`
	Name          string  `json:"name"`
	MimeType      string  `json:"mimeType"`
	Base64Content string  `json:"base64Content"`
}

// AddDocumentURLRequest bookmarks a url
type AddDocumentURLRequest struct {
	FolderID *string `json:"folderId,omitempty"`
	Name     string  `json:"name"`
	URL      string  `json:"url"`
}
