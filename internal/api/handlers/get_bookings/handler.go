package get_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SimpleBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SimpleBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SimpleBooking/internal/service/bookings"
)

const (
	msgMissingAdmin     = "требуется авторизация администратора"
	msgInvalidParams    = "некорректные параметры запроса"
	msgInvalidTimeRange = "дата начала периода позже даты окончания"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings
// Query params: limit, from, to (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем администратора из контекста (через middleware AdminAuth)
	admin, ok := middleware.GetAdmin(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/bookings - Missing admin")
		handlers.RespondUnauthorized(w, msgMissingAdmin)
		return
	}

	// Формируем запрос к сервису
	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(query.Get("limit"), query.Get("from"), query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidTimeRange):
			h.logger.Warn("GET /admin/bookings - Invalid time range: from=%s, to=%s", query.Get("from"), query.Get("to"))
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		default:
			h.logger.Error("GET /admin/bookings - Failed to get bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved successfully: admin=%s, count=%d",
		admin, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
