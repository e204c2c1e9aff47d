package create_booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	createBooking "github.com/m04kA/SMC-SimpleBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SimpleBooking/pkg/logger"
)

type useCaseMock struct{ mock.Mock }

func (m *useCaseMock) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createBooking.Response)
	return resp, args.Error(1)
}

func doRequest(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	uc := &useCaseMock{}
	date := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	uc.On("Execute", mock.Anything, &createBooking.Request{
		Contact:   "+7 900 123-45-67",
		Date:      date,
		StartTime: "10:00",
	}).Return(&createBooking.Response{
		ID:          5,
		Contact:     "+7 900 123-45-67",
		BookingDate: date,
		StartTime:   "10:00",
		CreatedAt:   time.Date(2025, time.March, 1, 8, 30, 0, 0, time.UTC),
	}, nil)

	rec := doRequest(NewHandler(uc, logger.NewNop()),
		`{"contact":"+7 900 123-45-67","date":"2025-03-03","time":"10:00"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{
		"id": 5,
		"contact": "+7 900 123-45-67",
		"date": "2025-03-03",
		"time": "10:00",
		"createdAt": "2025-03-01T08:30:00Z"
	}`, rec.Body.String())
	uc.AssertExpectations(t)
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"contact":`},
		{name: "unknown field", body: `{"contact":"123456","date":"2025-03-03","time":"10:00","name":"x"}`},
		{name: "bad date", body: `{"contact":"123456","date":"03.03.2025","time":"10:00"}`},
		{name: "impossible date", body: `{"contact":"123456","date":"2025-02-30","time":"10:00"}`},
		{name: "single digit hour", body: `{"contact":"123456","date":"2025-03-03","time":"9:00"}`},
		{name: "seconds", body: `{"contact":"123456","date":"2025-03-03","time":"10:00:00"}`},
		{name: "hour 24", body: `{"contact":"123456","date":"2025-03-03","time":"24:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &useCaseMock{}
			rec := doRequest(NewHandler(uc, logger.NewNop()), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{err: createBooking.ErrInvalidContact, wantStatus: http.StatusBadRequest, wantMsg: msgInvalidContact},
		{err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantMsg: msgInvalidInput},
		{err: createBooking.ErrInvalidTimeSlot, wantStatus: http.StatusBadRequest, wantMsg: msgInvalidTimeSlot},
		{err: createBooking.ErrDayFull, wantStatus: http.StatusConflict, wantMsg: msgDayFull},
		{err: createBooking.ErrSlotNotAvailable, wantStatus: http.StatusConflict, wantMsg: msgSlotNotAvailable},
		{err: fmt.Errorf("%w: db down", createBooking.ErrInternal), wantStatus: http.StatusInternalServerError},
		{err: errors.New("unexpected"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &useCaseMock{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := doRequest(NewHandler(uc, logger.NewNop()),
				`{"contact":"123456","date":"2025-03-03","time":"10:00"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Contains(t, rec.Body.String(), tt.wantMsg)
			}
		})
	}
}
