// Package health provides health check endpoints.
package health

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/starquake/quizgame/internal/httputil"
	"github.com/starquake/quizgame/internal/logging"
	"github.com/starquake/quizgame/internal/store"
)

// Status is the body of a health check response.
type Status struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HandleHealthz returns a handler that serves health check responses.
func HandleHealthz(logger *slog.Logger, stores *store.Stores) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		httpStatus := http.StatusOK
		health := Status{
			Status: "ok",
			Checks: make(map[string]string),
		}

		if err := stores.Questions.Ping(ctx); err != nil {
			health.Status = "degraded"
			health.Checks["database"] = fmt.Sprintf("unhealthy: %v", err)
			httpStatus = http.StatusServiceUnavailable
			logger.ErrorContext(ctx, "database health check failed", logging.ErrAttr(err))
		} else {
			health.Checks["database"] = "healthy"
		}

		logger.DebugContext(ctx, "health check performed", slog.String("status", health.Status))
		if err := httputil.EncodeJSON(w, httpStatus, health); err != nil {
			logger.ErrorContext(ctx, "error writing health response", logging.ErrAttr(err))
		}
	}
}
