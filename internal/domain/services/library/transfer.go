package library

import (
	"context"

	models "queenzz/internal/domain/models/library"
)

// TransferService exports and imports libraries
type TransferService interface {
	// Export builds a JSON export payload of the active library
	Export(ctx context.Context, req *ExportRequest) (*ExportResult, error)

	// ExportWorkbook renders the selected quizzes as a printable xlsx workbook
	ExportWorkbook(ctx context.Context, req *WorkbookRequest) (*WorkbookResult, error)

	// Import adds an exported library as a new library or into an existing one
	Import(ctx context.Context, req *ImportRequest) (*models.Library, error)
}

// ExportRequest selects what goes into a JSON export. An empty selection exports every item.
type ExportRequest struct {
	SelectedIDs      []string `json:"selectedIds"`
	IncludeProgress  bool     `json:"includeProgress"`
	IncludeDocuments bool     `json:"includeDocuments"`
}

// ExportResult is a JSON export and its suggested file name
type ExportResult struct {
	Filename string          `json:"filename"`
	Library  *models.Library `json:"library"`
}

// WorkbookRequest selects the quizzes of a workbook export. Selected folders
// export every quiz beneath them.
type WorkbookRequest struct {
	QuizIDs []string `json:"quizIds"`
	Title   string   `json:"title,omitempty"`
}

// WorkbookResult is an xlsx file
type WorkbookResult struct {
	Filename string
	Content  []byte
}

// ImportMode selects where imported content goes
type ImportMode string

const (
	ImportAsNew ImportMode = "new"
	ImportInto  ImportMode = "into"
)

// ImportRequest imports an export payload. SelectedIDs, when set, filters the
// imported tree first.
type ImportRequest struct {
	Mode             ImportMode      `json:"mode"`
	Name             string          `json:"name,omitempty"`
	TargetLibraryID  string          `json:"targetLibraryId,omitempty"`
	SelectedIDs      []string        `json:"selectedIds,omitempty"`
	IncludeProgress  bool            `json:"includeProgress"`
	IncludeDocuments bool            `json:"includeDocuments"`
	Data             *models.Library `json:"data"`
}
