package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/briefops/taskbrief-api/internal/api/shared"
)

// RecoveryMiddleware converts panics into 500 JSON responses instead of
// dropped connections. The panic value is included in the response body only
// outside production; production callers get a generic message. The full
// panic and stack always go to the logs.
func RecoveryMiddleware(isProduction bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}

					slog.Error("panic recovered",
						slog.Any("panic", rec),
						slog.String("trace_id", shared.GetTraceID(r.Context())),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))

					message := "An unexpected error occurred"
					if !isProduction {
						message = fmt.Sprintf("Internal server error: %v", rec)
					}

					shared.RespondWithError(w, r,
						http.StatusInternalServerError, message, "INTERNAL_SERVER_ERROR")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
