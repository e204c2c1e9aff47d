package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SimpleBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SimpleBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidContact     = "укажите корректный контактный номер"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidTimeSlot    = "выбранное время не входит в расписание этого дня"
	msgDayFull            = "на выбранную дату свободных мест нет"
	msgSlotNotAvailable   = "выбранный временной слот уже занят"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrInvalidContact):
			h.logger.Warn("POST /bookings - Invalid contact: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgInvalidContact)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrDayFull):
			h.logger.Warn("POST /bookings - Day full: date=%s", req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDayFull)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, time=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, date=%s, time=%s",
		result.ID, response.Date, response.Time)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
