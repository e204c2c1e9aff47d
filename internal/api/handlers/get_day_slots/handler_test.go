package get_day_slots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	getDaySlots "github.com/m04kA/SMC-SimpleBooking/internal/usecase/get_day_slots"
	"github.com/m04kA/SMC-SimpleBooking/pkg/logger"
)

type useCaseMock struct{ mock.Mock }

func (m *useCaseMock) Execute(ctx context.Context, req *getDaySlots.Request) (*getDaySlots.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getDaySlots.Response)
	return resp, args.Error(1)
}

func serve(uc *useCaseMock, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/calendar/days/{date}/slots", NewHandler(uc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_OK(t *testing.T) {
	uc := &useCaseMock{}
	date := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	uc.On("Execute", mock.Anything, &getDaySlots.Request{Date: date}).Return(&getDaySlots.Response{
		Date:     date,
		Booked:   1,
		Capacity: 2,
		Slots: []domain.SlotAvailability{
			{Time: "09:00", Booked: 0, Available: true},
			{Time: "10:00", Booked: 1, Available: false},
		},
	}, nil)

	rec := serve(uc, "/api/v1/calendar/days/2025-03-03/slots")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"date": "2025-03-03",
		"booked": 1,
		"capacity": 2,
		"slots": [
			{"time": "09:00", "booked": 0, "available": true},
			{"time": "10:00", "booked": 1, "available": false}
		]
	}`, rec.Body.String())
}

func TestHandler_EmptyDayHasEmptySlotsArray(t *testing.T) {
	uc := &useCaseMock{}
	date := time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, mock.Anything).Return(&getDaySlots.Response{Date: date}, nil)

	rec := serve(uc, "/api/v1/calendar/days/2025-03-08/slots")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2025-03-08","booked":0,"capacity":0,"slots":[]}`, rec.Body.String())
}

func TestHandler_InvalidDate(t *testing.T) {
	for _, path := range []string{
		"/api/v1/calendar/days/2025-13-01/slots",
		"/api/v1/calendar/days/2025-02-29/slots",
		"/api/v1/calendar/days/today/slots",
	} {
		uc := &useCaseMock{}
		rec := serve(uc, path)

		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	}
}

func TestHandler_InternalError(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	rec := serve(uc, "/api/v1/calendar/days/2025-03-03/slots")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
