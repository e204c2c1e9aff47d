package check_license

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

// Handle POST /api/v1/admin/license/check
// Принудительная перепроверка без учета интервала.
// Отказ сервера или его недоступность отражаются в теле ответа, а не в статусе.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Recheck(r.Context(), true)
	if err != nil {
		h.logger.Error("POST /admin/license/check - Failed to recheck: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/license/check - Recheck finished: success=%t, message=%q", result.Success, result.Message)
	handlers.RespondJSON(w, http.StatusOK, result)
}
