package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"queenzz/internal/config"
	"queenzz/internal/domain"
	"queenzz/internal/httputil"
)

// Base64 inflates uploads by a third; the extra megabyte covers the JSON envelope
const (
	uploadBodyLimit = config.MaxUploadBytes*4/3 + 1<<20
	importBodyLimit = 4 * uploadBodyLimit
)

// handleError converts domain errors to problem responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var conflictErr *domain.ConflictError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondRequestError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondRequestError(w, r, http.StatusNotFound, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondRequestError(w, r, http.StatusConflict, conflictErr.Error())
	case errors.As(err, &tooLarge):
		httputil.RespondRequestError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
	default:
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", httputil.GetRequestID(r),
		)
		httputil.RespondRequestError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// parseBody decodes a JSON body, answering 400 (or 413) itself on failure
func parseBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	return parseBodyLimit(w, r, dest, httputil.DefaultBodyLimit)
}

func parseBodyLimit(w http.ResponseWriter, r *http.Request, dest any, limit int64) bool {
	if err := httputil.ParseJSONLimit(w, r, dest, limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.RespondRequestError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		httputil.RespondRequestError(w, r, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// pathID returns a required path value, answering 400 when it is blank
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		httputil.RespondRequestError(w, r, http.StatusBadRequest, name+" is required")
		return "", false
	}
	return id, true
}

// moveBody is shared by item and document moves. targetId must be present;
// null moves to the root.
type moveBody struct {
	IDs      []string                  `json:"ids"`
	TargetID httputil.Optional[string] `json:"targetId"`
}
