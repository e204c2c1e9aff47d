package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SimpleBooking/internal/api/handlers"
)

const (
	statusOK          = "ok"
	statusUnavailable = "unavailable"

	pingTimeout = 2 * time.Second
)

// Response тело ответа health-check
type Response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type Handler struct {
	db     Pinger
	logger Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("GET /health - Database ping failed: %v", err)
		handlers.RespondJSON(w, http.StatusServiceUnavailable, Response{
			Status:   statusUnavailable,
			Database: statusUnavailable,
		})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		Status:   statusOK,
		Database: statusOK,
	})
}
