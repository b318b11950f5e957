package handler

import (
	"log/slog"
	"net/http"

	svc "queenzz/internal/domain/services/library"
	"queenzz/internal/httputil"
)

// DocumentHandler handles the document tree of the active library
type DocumentHandler struct {
	documentService svc.DocumentService
	logger          *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService svc.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// ListDocuments returns the document tree, optionally sorted
// GET /api/documents?sort=default|az|za
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documentService.ListDocuments(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, docs)
}

// CreateFolder adds a document folder
// POST /api/documents/folders
func (h *DocumentHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req svc.AddDocumentFolderRequest
	if !parseBody(w, r, &req) {
		return
	}
	doc, err := h.documentService.AddFolder(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// UploadFile stores a base64 file
// POST /api/documents/files
func (h *DocumentHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	var req svc.AddDocumentFileRequest
	if !parseBodyLimit(w, r, &req, uploadBodyLimit) {
		return
	}
	doc, err := h.documentService.AddFile(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	h.logger.Info("document uploaded",
		"id", doc.ID,
		"size", doc.Size,
		"request_id", httputil.GetRequestID(r),
	)
	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// CreateURL bookmarks a url
// POST /api/documents/urls
func (h *DocumentHandler) CreateURL(w http.ResponseWriter, r *http.Request) {
	var req svc.AddDocumentURLRequest
	if !parseBody(w, r, &req) {
		return
	}
	doc, err := h.documentService.AddURL(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// RenameDocument renames a folder, file or url
// PATCH /api/documents/{id}
func (h *DocumentHandler) RenameDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req svc.RenameItemRequest
	if !parseBody(w, r, &req) {
		return
	}
	doc, err := h.documentService.Rename(r.Context(), id, &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// MoveDocuments moves documents into a folder; targetId null moves them to the root
// POST /api/documents/move
func (h *DocumentHandler) MoveDocuments(w http.ResponseWriter, r *http.Request) {
	var body moveBody
	if !parseBody(w, r, &body) {
		return
	}
	if !body.TargetID.Present {
		httputil.RespondRequestError(w, r, http.StatusBadRequest, "targetId is required (null for the root)")
		return
	}
	err := h.documentService.Move(r.Context(), &svc.MoveItemsRequest{IDs: body.IDs, TargetID: body.TargetID.Value})
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteDocuments removes documents with their stored content
// POST /api/documents/delete
func (h *DocumentHandler) DeleteDocuments(w http.ResponseWriter, r *http.Request) {
	var req svc.SelectionRequest
	if !parseBody(w, r, &req) {
		return
	}
	if err := h.documentService.Delete(r.Context(), &req); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type fileContentResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MimeType      string `json:"mimeType"`
	Size          int64  `json:"size"`
	Base64Content string `json:"base64Content"`
}

// GetFileContent returns a file with its base64 content
// GET /api/documents/{id}/content
func (h *DocumentHandler) GetFileContent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	doc, content, err := h.documentService.FileContent(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, fileContentResponse{
		ID:            doc.ID,
		Name:          doc.Name,
		MimeType:      doc.MimeType,
		Size:          doc.Size,
		Base64Content: content,
	})
}
