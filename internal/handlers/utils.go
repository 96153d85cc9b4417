package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"noteagent/internal/adapter"
	"noteagent/pkg/logging"
)

var logH = logging.NewLogger("Handlers")

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// too late for a clean status code, log and move on
		logH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, adapter.ToErrorResponse(httpCode, message))
}

// timeoutContext caps a request-scoped context without losing its values.
func timeoutContext(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), d)
}
