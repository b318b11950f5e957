package library

import (
	"context"

	models "queenzz/internal/domain/models/library"
)

// ItemService edits the folder/quiz/deck tree and the questions of the active library
type ItemService interface {
	GetItem(ctx context.Context, itemID string) (*models.Item, error)
	AddFolder(ctx context.Context, req *AddFolderRequest) (*models.Item, error)

	// AddQuizzes stores generated quizzes, splitting oversized ones into parts
	AddQuizzes(ctx context.Context, req *AddQuizzesRequest) ([]*models.Item, error)

	AddDeck(ctx context.Context, req *AddDeckRequest) (*models.Item, error)
	MoveItems(ctx context.Context, req *MoveItemsRequest) error
	DeleteItems(ctx context.Context, req *SelectionRequest) error
	RenameItem(ctx context.Context, itemID string, req *RenameItemRequest) (*models.Item, error)

	// ToggleFolder flips a folder open or closed and returns the open folder ids
	ToggleFolder(ctx context.Context, folderID string) ([]string, error)

	UpdateQuestion(ctx context.Context, q *models.Question) (*models.Question, error)
	MoveQuestions(ctx context.Context, req *MoveQuestionsRequest) error
	DeleteQuestions(ctx context.Context, req *SelectionRequest) error
	FlagQuestions(ctx context.Context, req *FlagQuestionsRequest) error

	// SearchQuestions filters questions across quizzes, annotated with their quiz
	SearchQuestions(ctx context.Context, params *models.SearchParams) ([]models.Question, error)

	// DuplicateQuestions groups questions of the given quizzes sharing a content signature
	DuplicateQuestions(ctx context.Context, req *DuplicatesRequest) ([][]models.Question, error)

	// PutQuestionImage stores an image of a question under its asset key
	PutQuestionImage(ctx context.Context, questionID string, kind ImageKind, base64Content string) error

	// QuestionImage returns a stored question image
	QuestionImage(ctx context.Context, questionID string, kind ImageKind) (string, error)
}

// ImageKind selects which image of a question is meant
type ImageKind string

const (
	ImageQuestion ImageKind = "question"
	ImageSource   ImageKind = "source"
)

// AddFolderRequest represents a folder creation request
type AddFolderRequest struct {
	ParentID *string `json:"parentId,omitempty"` // null for root
	Name     string  `json:"name"`
}

// AddQuizzesRequest stores one or more generated quizzes in a folder
type AddQuizzesRequest struct {
	ParentID *string                `json:"parentId,omitempty"`
	Quizzes  []models.GeneratedQuiz `json:"quizzes"`
}

// AddDeckRequest stores a flashcard deck
type AddDeckRequest struct {
	ParentID *string            `json:"parentId,omitempty"`
	Title    string             `json:"title"`
	Cards    []models.Flashcard `json:"cards"`
}

// MoveItemsRequest moves items into a folder, or to the root when TargetID is null
type MoveItemsRequest struct {
	IDs      []string `json:"ids"`
	TargetID *string  `json:"targetId"`
}

// SelectionRequest names a set of items or questions
type SelectionRequest struct {
	IDs []string `json:"ids"`
}

// RenameItemRequest renames a folder or retitles a quiz or deck
type RenameItemRequest struct {
	Name string `json:"name"`
}

// MoveQuestionsRequest appends questions to another quiz
type MoveQuestionsRequest struct {
	IDs          []string `json:"ids"`
	TargetQuizID string   `json:"targetQuizId"`
}

// FlagQuestionsRequest sets or (with a null flag) clears the flag of questions
type FlagQuestionsRequest struct {
	IDs  []string     `json:"ids"`
	Flag *models.Flag `json:"flag"`
}

// DuplicatesRequest limits duplicate detection to the given quizzes
type DuplicatesRequest struct {
	QuizIDs []string `json:"quizIds"`
}
