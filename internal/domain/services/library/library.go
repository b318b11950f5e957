package library

import (
	"context"
	"time"

	models "queenzz/internal/domain/models/library"
)

// LibraryService manages the set of libraries and the active selection
type LibraryService interface {
	// Snapshot returns the whole migrated state
	Snapshot(ctx context.Context) (*models.AppData, error)

	// ListLibraries summarizes every library, oldest first
	ListLibraries(ctx context.Context) ([]LibrarySummary, error)

	// ActiveLibrary returns the active library
	ActiveLibrary(ctx context.Context) (*models.Library, error)

	// CreateLibrary adds an empty library and makes it active
	CreateLibrary(ctx context.Context, req *CreateLibraryRequest) (*models.Library, error)

	// RenameLibrary renames the active library
	RenameLibrary(ctx context.Context, req *RenameLibraryRequest) (*models.Library, error)

	// DeleteActiveLibrary removes the active library and returns the newly active one.
	// The stored content of its document files is deleted too.
	DeleteActiveLibrary(ctx context.Context) (*models.Library, error)

	// SwitchLibrary makes another library active
	SwitchLibrary(ctx context.Context, libraryID string) (*models.Library, error)

	// ResetProgress clears study progress of a library
	ResetProgress(ctx context.Context, libraryID string) (*models.Library, error)
}

// CreateLibraryRequest represents a library creation request
type CreateLibraryRequest struct {
	Name string `json:"name"`
}

// RenameLibraryRequest represents a rename of the active library
type RenameLibraryRequest struct {
	Name string `json:"name"`
}

// LibrarySummary is a compact view of one library
type LibrarySummary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	Active        bool      `json:"active"`
	QuizCount     int       `json:"quizCount"`
	DeckCount     int       `json:"deckCount"`
	QuestionCount int       `json:"questionCount"`
	QueuedCount   int       `json:"queuedCount"`
	DueCount      int       `json:"dueCount"`
}
