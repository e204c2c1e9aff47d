package deactivate_license

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

// Handle POST /api/v1/admin/license/deactivate
// Недоступность сервера лицензий не мешает деактивации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Deactivate(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/license/deactivate - Failed to deactivate: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/license/deactivate - License deactivated")
	handlers.RespondJSON(w, http.StatusOK, result)
}
