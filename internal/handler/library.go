package handler

import (
	"log/slog"
	"net/http"

	svc "queenzz/internal/domain/services/library"
	"queenzz/internal/httputil"
)

// LibraryHandler handles library set HTTP requests
type LibraryHandler struct {
	libraryService svc.LibraryService
	logger         *slog.Logger
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(libraryService svc.LibraryService, logger *slog.Logger) *LibraryHandler {
	return &LibraryHandler{
		libraryService: libraryService,
		logger:         logger,
	}
}

// HealthCheck reports liveness
// GET /health
func (h *LibraryHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetState returns the whole snapshot
// GET /api/state
func (h *LibraryHandler) GetState(w http.ResponseWriter, r *http.Request) {
	data, err := h.libraryService.Snapshot(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, data)
}

// ListLibraries summarizes every library
// GET /api/libraries
func (h *LibraryHandler) ListLibraries(w http.ResponseWriter, r *http.Request) {
	libraries, err := h.libraryService.ListLibraries(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, libraries)
}

// CreateLibrary creates a library and makes it active
// POST /api/libraries
func (h *LibraryHandler) CreateLibrary(w http.ResponseWriter, r *http.Request) {
	var req svc.CreateLibraryRequest
	if !parseBody(w, r, &req) {
		return
	}
	lib, err := h.libraryService.CreateLibrary(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, lib)
}

// GetActiveLibrary returns the active library
// GET /api/libraries/active
func (h *LibraryHandler) GetActiveLibrary(w http.ResponseWriter, r *http.Request) {
	lib, err := h.libraryService.ActiveLibrary(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, lib)
}

// RenameActiveLibrary renames the active library
// PATCH /api/libraries/active
func (h *LibraryHandler) RenameActiveLibrary(w http.ResponseWriter, r *http.Request) {
	var req svc.RenameLibraryRequest
	if !parseBody(w, r, &req) {
		return
	}
	lib, err := h.libraryService.RenameLibrary(r.Context(), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, lib)
}

// DeleteActiveLibrary deletes the active library and returns the new active one
// DELETE /api/libraries/active
func (h *LibraryHandler) DeleteActiveLibrary(w http.ResponseWriter, r *http.Request) {
	lib, err := h.libraryService.DeleteActiveLibrary(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, lib)
}

// ActivateLibrary switches the active library
// POST /api/libraries/{id}/activate
func (h *LibraryHandler) ActivateLibrary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	lib, err := h.libraryService.SwitchLibrary(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, lib)
}

// ResetProgress clears the study progress of a library
// POST /api/libraries/{id}/reset-progress
func (h *LibraryHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	lib, err := h.libraryService.ResetProgress(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, lib)
}
