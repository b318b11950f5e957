package handler

import (
	"log/slog"
	"net/http"

	models "queenzz/internal/domain/models/library"
	svc "queenzz/internal/domain/services/library"
	"queenzz/internal/httputil"
)

// ItemHandler handles library tree and question HTTP requests
type ItemHandler struct {
	itemService svc.ItemService
	logger      *slog.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService svc.ItemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		logger:      logger,
	}
}

// GetItem returns one folder, quiz or deck
// GET /api/items/{id}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	item, err := h.itemService.GetItem(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, item)
}

// CreateFolder adds a folder
// POST /api/items/folders
func (h *ItemHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req svc.AddFolderRequest
	if !parseBody(w, r, &req) {
		return
	}
	folder, err := h.itemService.AddFolder(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// CreateQuizzes stores generated quizzes, splitting oversized ones
// POST /api/items/quizzes
func (h *ItemHandler) CreateQuizzes(w http.ResponseWriter, r *http.Request) {
	var req svc.AddQuizzesRequest
	if !parseBodyLimit(w, r, &req, uploadBodyLimit) {
		return
	}
	quizzes, err := h.itemService.AddQuizzes(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, quizzes)
}

// CreateDeck stores a flashcard deck
// POST /api/items/decks
func (h *ItemHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req svc.AddDeckRequest
	if !parseBodyLimit(w, r, &req, uploadBodyLimit) {
		return
	}
	deck, err := h.itemService.AddDeck(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, deck)
}

// MoveItems moves items into a folder; targetId null moves them to the root
// POST /api/items/move
func (h *ItemHandler) MoveItems(w http.ResponseWriter, r *http.Request) {
	var body moveBody
	if !parseBody(w, r, &body) {
		return
	}
	if !body.TargetID.Present {
		httputil.RespondRequestError(w, r, http.StatusBadRequest, "targetId is required (null for the root)")
		return
	}
	err := h.itemService.MoveItems(r.Context(), &svc.MoveItemsRequest{IDs: body.IDs, TargetID: body.TargetID.Value})
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteItems removes items and folder subtrees
// POST /api/items/delete
func (h *ItemHandler) DeleteItems(w http.ResponseWriter, r *http.Request) {
	var req svc.SelectionRequest
	if !parseBody(w, r, &req) {
		return
	}
	if err := h.itemService.DeleteItems(r.Context(), &req); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenameItem renames a folder or retitles a quiz or deck
// PATCH /api/items/{id}
func (h *ItemHandler) RenameItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req svc.RenameItemRequest
	if !parseBody(w, r, &req) {
		return
	}
	item, err := h.itemService.RenameItem(r.Context(), id, &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, item)
}

// ToggleFolder opens or closes a folder in the browser view
// POST /api/items/{id}/toggle
func (h *ItemHandler) ToggleFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	open, err := h.itemService.ToggleFolder(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string][]string{"openFolderIds": open})
}

// UpdateQuestion replaces a question
// PUT /api/questions/{id}
func (h *ItemHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var q models.Question
	if !parseBody(w, r, &q) {
		return
	}
	if q.ID != "" && q.ID != id {
		httputil.RespondRequestError(w, r, http.StatusBadRequest, "question id does not match the path")
		return
	}
	q.ID = id
	updated, err := h.itemService.UpdateQuestion(r.Context(), &q)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, updated)
}

// MoveQuestions appends questions to another quiz
// POST /api/questions/move
func (h *ItemHandler) MoveQuestions(w http.ResponseWriter, r *http.Request) {
	var req svc.MoveQuestionsRequest
	if !parseBody(w, r, &req) {
		return
	}
	if err := h.itemService.MoveQuestions(r.Context(), &req); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteQuestions removes questions and their SRS entries
// POST /api/questions/delete
func (h *ItemHandler) DeleteQuestions(w http.ResponseWriter, r *http.Request) {
	var req svc.SelectionRequest
	if !parseBody(w, r, &req) {
		return
	}
	if err := h.itemService.DeleteQuestions(r.Context(), &req); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FlagQuestions sets the flag of questions; flag null clears it
// POST /api/questions/flag
func (h *ItemHandler) FlagQuestions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs  []string                       `json:"ids"`
		Flag httputil.Optional[models.Flag] `json:"flag"`
	}
	if !parseBody(w, r, &body) {
		return
	}
	if !body.Flag.Present {
		httputil.RespondRequestError(w, r, http.StatusBadRequest, "flag is required (null to clear)")
		return
	}
	req := svc.FlagQuestionsRequest{IDs: body.IDs, Flag: body.Flag.Value}
	if err := h.itemService.FlagQuestions(r.Context(), &req); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchQuestions runs an advanced search over the active library
// POST /api/questions/search
func (h *ItemHandler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var params models.SearchParams
	if !parseBody(w, r, &params) {
		return
	}
	results, err := h.itemService.SearchQuestions(r.Context(), &params)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, results)
}

// FindDuplicates groups questions of the given quizzes with equal content
// POST /api/questions/duplicates
func (h *ItemHandler) FindDuplicates(w http.ResponseWriter, r *http.Request) {
	var req svc.DuplicatesRequest
	if !parseBody(w, r, &req) {
		return
	}
	groups, err := h.itemService.DuplicateQuestions(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, groups)
}

type imageBody struct {
	Base64Content string `json:"base64Content"`
}

// PutQuestionImage stores the question or source image of a question
// PUT /api/questions/{id}/images/{kind}
func (h *ItemHandler) PutQuestionImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body imageBody
	if !parseBodyLimit(w, r, &body, uploadBodyLimit) {
		return
	}
	kind := svc.ImageKind(r.PathValue("kind"))
	if err := h.itemService.PutQuestionImage(r.Context(), id, kind, body.Base64Content); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetQuestionImage returns a stored question image as base64
// GET /api/questions/{id}/images/{kind}
func (h *ItemHandler) GetQuestionImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	content, err := h.itemService.QuestionImage(r.Context(), id, svc.ImageKind(r.PathValue("kind")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, imageBody{Base64Content: content})
}
