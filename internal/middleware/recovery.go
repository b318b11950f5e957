package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"queenzz/internal/httputil"
)

// Recovery turns a handler panic into a 500 problem response. When the
// handler already started its response only the log entry is written.
// http.ErrAbortHandler is re-raised so net/http aborts the connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				logger.Error("panic recovered",
					"panic", v,
					"method", r.Method,
					"path", r.URL.Path,
					"response_started", rec.status != 0,
					"request_id", httputil.GetRequestID(r),
					"stack", string(debug.Stack()),
				)
				if rec.status == 0 {
					httputil.RespondRequestError(w, r, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
