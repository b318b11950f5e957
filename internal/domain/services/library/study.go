package library

import (
	"context"

	"queenzz/internal/config"
	models "queenzz/internal/domain/models/library"
)

// StudyService records quiz runs and the study aids of the active library
type StudyService interface {
	// Settings returns the study settings in effect
	Settings() *config.StudySettings

	// CompleteQuiz records a finished run: progress, score history, SRS queue
	CompleteQuiz(ctx context.Context, req *CompleteQuizRequest) (*models.CompletionResult, error)

	// DueReviews lists queued SRS entries due today
	DueReviews(ctx context.Context) ([]models.SRSEntry, error)

	// Challenge draws the question set of a weekly or monthly challenge
	Challenge(ctx context.Context, kind models.QuizType) (*Challenge, error)

	RecordFlashcardResult(ctx context.Context, req *FlashcardResultRequest) error

	PausedQuiz(ctx context.Context) (*models.PausedQuizState, error)
	PauseQuiz(ctx context.Context, state *models.PausedQuizState) error
	DiscardPausedQuiz(ctx context.Context) error

	SetStudyPlan(ctx context.Context, req *StudyPlanRequest) error

	// SaveMnemonic upserts a rule; an inline image is moved to the asset store
	SaveMnemonic(ctx context.Context, req *SaveMnemonicRequest) (*models.MnemonicRule, error)
	DeleteMnemonic(ctx context.Context, ruleID string) error
	MnemonicImage(ctx context.Context, ruleID string) (string, error)
}

// CompleteQuizRequest describes a finished quiz run
type CompleteQuizRequest struct {
	QuizID    string              `json:"quizId,omitempty"`
	QuizType  models.QuizType     `json:"quizType"`
	Questions []models.Question   `json:"questions"`
	Answers   models.AnswerMap    `json:"userAnswers"`
	Settings  models.QuizSettings `json:"settings"`
}

// Challenge is the question set of a periodic challenge
type Challenge struct {
	Type      models.QuizType   `json:"type"`
	Period    string            `json:"period"`
	Completed bool              `json:"completed"`
	Questions []models.Question `json:"questions"`
}

// FlashcardResultRequest records one flashcard answer
type FlashcardResultRequest struct {
	CardID  string `json:"cardId"`
	Correct bool   `json:"correct"`
}

// StudyPlanRequest replaces the planner configuration
type StudyPlanRequest struct {
	Config   *models.StudyPlanConfig   `json:"config"`
	Sessions []models.StudyPlanSession `json:"sessions"`
}

// SaveMnemonicRequest creates or replaces a mnemonic rule
type SaveMnemonicRequest struct {
	ID          string `json:"id,omitempty"`
	QuestionID  string `json:"questionId"`
	Text        string `json:"text"`
	ImageBase64 string `json:"imageBase64,omitempty"`
}
