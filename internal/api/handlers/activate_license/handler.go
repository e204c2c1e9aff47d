package activate_license

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SimpleBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SimpleBooking/internal/service/license"
	"github.com/m04kA/SMC-SimpleBooking/internal/service/license/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidPurchaseCode = "не указан код покупки"
	msgRejected            = "сервер лицензий отклонил код покупки"
	msgServerNotConfigured = "сервер лицензий не настроен"
	msgServerUnavailable   = "сервер лицензий недоступен"
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

// Handle POST /api/v1/admin/license/activate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ActivateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/license/activate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Activate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, license.ErrInvalidPurchaseCode):
			h.logger.Warn("POST /admin/license/activate - Empty purchase code")
			handlers.RespondBadRequest(w, msgInvalidPurchaseCode)

		case errors.Is(err, license.ErrRejected):
			h.logger.Warn("POST /admin/license/activate - Rejected: %v", err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, rejectionMessage(err))

		case errors.Is(err, license.ErrServerNotConfigured):
			h.logger.Error("POST /admin/license/activate - License server is not configured")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgServerNotConfigured)

		case errors.Is(err, license.ErrServerUnavailable):
			h.logger.Warn("POST /admin/license/activate - License server unavailable: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgServerUnavailable)

		default:
			h.logger.Error("POST /admin/license/activate - Failed to activate: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/license/activate - License activated")
	handlers.RespondJSON(w, http.StatusOK, result)
}

// rejectionMessage достает текст отказа, присланный сервером лицензий
func rejectionMessage(err error) string {
	prefix := license.ErrRejected.Error() + ": "
	msg := err.Error()
	if idx := strings.Index(msg, prefix); idx >= 0 {
		if remote := strings.TrimSpace(msg[idx+len(prefix):]); remote != "" {
			return remote
		}
	}
	return msgRejected
}
