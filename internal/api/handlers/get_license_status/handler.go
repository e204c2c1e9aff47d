package get_license_status

import (
	"net/http"

	"github.com/m04kA/SMC-SimpleBooking/internal/api/handlers"
)

type Handler struct {
	service LicenseService
	logger  Logger
}

func NewHandler(service LicenseService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/license
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Status(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/license - Failed to get license status: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/license - License status: status=%s, can_run=%t", result.Status, result.CanRun)
	handlers.RespondJSON(w, http.StatusOK, result)
}
