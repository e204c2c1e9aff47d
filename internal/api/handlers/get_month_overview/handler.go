package get_month_overview

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SimpleBooking/internal/api/handlers"
	getMonthOverview "github.com/m04kA/SMC-SimpleBooking/internal/usecase/get_month_overview"
)

const (
	msgInvalidMonth = "некорректный год или месяц"
)

type Handler struct {
	useCase GetMonthOverviewUseCase
	logger  Logger
}

func NewHandler(useCase GetMonthOverviewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar/{year}/{month}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	useCaseReq, err := ToUseCaseRequest(vars["year"], vars["month"])
	if err != nil {
		h.logger.Warn("GET /calendar/{year}/{month} - Invalid path params: year=%q, month=%q, error=%v",
			vars["year"], vars["month"], err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getMonthOverview.ErrInvalidMonth):
			h.logger.Warn("GET /calendar/{year}/{month} - Invalid month: year=%d, month=%d", useCaseReq.Year, useCaseReq.Month)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /calendar/{year}/{month} - Failed to build overview: year=%d, month=%d, error=%v",
				useCaseReq.Year, useCaseReq.Month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendar/{year}/{month} - Overview retrieved successfully: year=%d, month=%d",
		useCaseReq.Year, useCaseReq.Month)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
