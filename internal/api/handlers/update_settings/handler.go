package update_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SimpleBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SimpleBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SimpleBooking/internal/service/settings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные настройки доступности"
	msgMissingAdmin       = "требуется авторизация администратора"
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

// Handle PUT /api/v1/admin/settings
// Полностью заменяет настройки доступности
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.GetAdmin(r.Context())
	if !ok {
		h.logger.Warn("PUT /admin/settings - Missing admin")
		handlers.RespondUnauthorized(w, msgMissingAdmin)
		return
	}

	// Декодируем body
	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /admin/settings - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /admin/settings - Failed to update settings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/settings - Settings updated successfully: admin=%s", admin)
	handlers.RespondJSON(w, http.StatusOK, result)
}
