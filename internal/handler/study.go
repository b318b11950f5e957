package handler

import (
	"log/slog"
	"net/http"

	models "queenzz/internal/domain/models/library"
	svc "queenzz/internal/domain/services/library"
	"queenzz/internal/httputil"
)

// StudyHandler handles quiz runs, reviews and study aids
type StudyHandler struct {
	studyService svc.StudyService
	logger       *slog.Logger
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(studyService svc.StudyService, logger *slog.Logger) *StudyHandler {
	return &StudyHandler{
		studyService: studyService,
		logger:       logger,
	}
}

// challengeKinds maps the path segment of a challenge to its quiz type
var challengeKinds = map[string]models.QuizType{
	"weekly":  models.QuizWeeklyChallenge,
	"monthly": models.QuizMonthlyChallenge,
}

// CompleteQuiz records a finished quiz run
// POST /api/quiz/complete
func (h *StudyHandler) CompleteQuiz(w http.ResponseWriter, r *http.Request) {
	var req svc.CompleteQuizRequest
	if !parseBodyLimit(w, r, &req, uploadBodyLimit) {
		return
	}
	result, err := h.studyService.CompleteQuiz(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, result)
}

// GetPausedQuiz returns the saved quiz run
// GET /api/quiz/paused
func (h *StudyHandler) GetPausedQuiz(w http.ResponseWriter, r *http.Request) {
	state, err := h.studyService.PausedQuiz(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, state)
}

// PauseQuiz saves a quiz run, replacing any previous one
// PUT /api/quiz/paused
func (h *StudyHandler) PauseQuiz(w http.ResponseWriter, r *http.Request) {
	var state models.PausedQuizState
	if !parseBodyLimit(w, r, &state, uploadBodyLimit) {
		return
	}
	if err := h.studyService.PauseQuiz(r.Context(), &state); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DiscardPausedQuiz drops the saved quiz run
// DELETE /api/quiz/paused
func (h *StudyHandler) DiscardPausedQuiz(w http.ResponseWriter, r *http.Request) {
	if err := h.studyService.DiscardPausedQuiz(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DueReviews lists SRS entries due today
// GET /api/srs/due
func (h *StudyHandler) DueReviews(w http.ResponseWriter, r *http.Request) {
	entries, err := h.studyService.DueReviews(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.SRSEntry{}
	}
	httputil.RespondJSON(w, http.StatusOK, entries)
}

// GetChallenge draws the questions of the weekly or monthly challenge
// GET /api/challenges/{kind}
func (h *StudyHandler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	kind, ok := challengeKinds[r.PathValue("kind")]
	if !ok {
		httputil.RespondRequestError(w, r, http.StatusBadRequest, "challenge kind must be weekly or monthly")
		return
	}
	challenge, err := h.studyService.Challenge(r.Context(), kind)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, challenge)
}

// RecordFlashcardResult updates the failed flashcard list
// POST /api/flashcards/results
func (h *StudyHandler) RecordFlashcardResult(w http.ResponseWriter, r *http.Request) {
	var req svc.FlashcardResultRequest
	if !parseBody(w, r, &req) {
		return
	}
	if err := h.studyService.RecordFlashcardResult(r.Context(), &req); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetStudyPlan replaces the planner configuration and sessions
// PUT /api/study-plan
func (h *StudyHandler) SetStudyPlan(w http.ResponseWriter, r *http.Request) {
	var req svc.StudyPlanRequest
	if !parseBody(w, r, &req) {
		return
	}
	if err := h.studyService.SetStudyPlan(r.Context(), &req); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveMnemonic creates or replaces a mnemonic rule
// POST /api/mnemonics
func (h *StudyHandler) SaveMnemonic(w http.ResponseWriter, r *http.Request) {
	var req svc.SaveMnemonicRequest
	if !parseBodyLimit(w, r, &req, uploadBodyLimit) {
		return
	}
	rule, err := h.studyService.SaveMnemonic(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, rule)
}

// DeleteMnemonic removes a rule and its image
// DELETE /api/mnemonics/{id}
func (h *StudyHandler) DeleteMnemonic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.studyService.DeleteMnemonic(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetMnemonicImage returns the image of a rule as base64
// GET /api/mnemonics/{id}/image
func (h *StudyHandler) GetMnemonicImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	content, err := h.studyService.MnemonicImage(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, imageBody{Base64Content: content})
}

// GetSettings returns the study settings in effect
// GET /api/settings
func (h *StudyHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.studyService.Settings())
}
