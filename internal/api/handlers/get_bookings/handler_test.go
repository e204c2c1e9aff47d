package get_bookings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SimpleBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SimpleBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SimpleBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SimpleBooking/pkg/logger"
)

type serviceMock struct{ mock.Mock }

func (m *serviceMock) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.BookingListResponse)
	return resp, args.Error(1)
}

func doRequest(h *Handler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings"+query, nil)
	req = req.WithContext(middleware.WithAdmin(req.Context(), "admin"))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest("", "", "")
	require.NoError(t, err)
	assert.Zero(t, req.Limit)
	assert.Nil(t, req.StartDate)
	assert.Nil(t, req.EndDate)

	req, err = ToServiceRequest("20", "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	assert.Equal(t, 20, req.Limit)
	require.NotNil(t, req.StartDate)
	require.NotNil(t, req.EndDate)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), *req.StartDate)
	assert.Equal(t, time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), *req.EndDate)

	for _, tt := range [][3]string{
		{"abc", "", ""},
		{"0", "", ""},
		{"", "01.03.2025", ""},
		{"", "", "2025-02-30"},
	} {
		_, err := ToServiceRequest(tt[0], tt[1], tt[2])
		assert.Error(t, err, tt)
	}
}

func TestHandler_OK(t *testing.T) {
	svc := &serviceMock{}
	svc.On("List", mock.Anything, mock.MatchedBy(func(req *models.ListBookingsRequest) bool {
		return req.Limit == 5 && req.StartDate == nil && req.EndDate == nil
	})).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{{
		ID:          3,
		Contact:     "123456",
		BookingDate: "2025-03-03",
		StartTime:   "09:30",
		CreatedAt:   time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC),
	}}}, nil)

	rec := doRequest(NewHandler(svc, logger.NewNop()), "?limit=5")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{
		"id": 3,
		"contact": "123456",
		"bookingDate": "2025-03-03",
		"startTime": "09:30",
		"createdAt": "2025-03-01T08:00:00Z"
	}]`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandler_EmptyList(t *testing.T) {
	svc := &serviceMock{}
	svc.On("List", mock.Anything, mock.Anything).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil)

	rec := doRequest(NewHandler(svc, logger.NewNop()), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		svcErr     error
		wantStatus int
	}{
		{name: "bad limit", query: "?limit=-1", wantStatus: http.StatusBadRequest},
		{name: "bad date", query: "?from=yesterday", wantStatus: http.StatusBadRequest},
		{name: "inverted range", query: "?from=2025-03-10&to=2025-03-01", svcErr: bookings.ErrInvalidTimeRange, wantStatus: http.StatusBadRequest},
		{name: "internal", query: "", svcErr: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			if tt.svcErr != nil {
				svc.On("List", mock.Anything, mock.Anything).Return(nil, tt.svcErr)
			}

			rec := doRequest(NewHandler(svc, logger.NewNop()), tt.query)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_MissingAdmin(t *testing.T) {
	svc := &serviceMock{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
