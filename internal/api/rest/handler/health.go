package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/clinic-server/internal/api/rest/response"
	"github.com/dtroode/clinic-server/internal/logger"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports service readiness.
type Health struct {
	db     Pinger
	logger *logger.Logger
}

// NewHealth creates a new Health handler.
func NewHealth(db Pinger, logger *logger.Logger) *Health {
	return &Health{db: db, logger: logger}
}

// Check handles GET /healthz.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("Health handler: database unreachable",
			"error", err.Error())
		response.JSON(w, http.StatusServiceUnavailable, messageResponse{Message: "database unavailable"})
		return
	}

	response.JSON(w, http.StatusOK, messageResponse{Message: "ok"})
}
