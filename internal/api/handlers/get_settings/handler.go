package get_settings

import (
	"net/http"

	"github.com/m04kA/SMC-SimpleBooking/internal/api/handlers"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/settings
// Если настройки не сохранялись, сервис возвращает значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/settings - Failed to get settings: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/settings - Settings retrieved successfully: duration=%d, window=%s-%s",
		result.SlotDurationMinutes, result.WindowStart, result.WindowEnd)
	handlers.RespondJSON(w, http.StatusOK, result)
}
