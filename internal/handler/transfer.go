package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	svc "queenzz/internal/domain/services/library"
	"queenzz/internal/httputil"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TransferHandler handles library export and import
type TransferHandler struct {
	transferService svc.TransferService
	logger          *slog.Logger
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferService svc.TransferService, logger *slog.Logger) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
		logger:          logger,
	}
}

// Export downloads the active library as a JSON file
// POST /api/export
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req svc.ExportRequest
	if !parseBody(w, r, &req) {
		return
	}
	result, err := h.transferService.Export(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	httputil.RespondJSON(w, http.StatusOK, result.Library)
}

// ExportWorkbook downloads the selected quizzes as a printable xlsx workbook
// POST /api/export/workbook
func (h *TransferHandler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	var req svc.WorkbookRequest
	if !parseBody(w, r, &req) {
		return
	}
	result, err := h.transferService.ExportWorkbook(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondAttachment(w, xlsxContentType, result.Filename, result.Content)
}

// Import adds an export payload as a new library or into an existing one
// POST /api/import
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req svc.ImportRequest
	if !parseBodyLimit(w, r, &req, importBodyLimit) {
		return
	}
	lib, err := h.transferService.Import(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, lib)
}
