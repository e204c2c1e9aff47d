package deactivate_license

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SimpleBooking/internal/service/license/models"
	"github.com/m04kA/SMC-SimpleBooking/pkg/logger"
)

type serviceMock struct{ mock.Mock }

func (m *serviceMock) Deactivate(ctx context.Context) (*models.ActionResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*models.ActionResponse)
	return resp, args.Error(1)
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		resp       *models.ActionResponse
		err        error
		wantStatus int
	}{
		{name: "ok", resp: &models.ActionResponse{Success: true, Message: "License deactivated."}, wantStatus: http.StatusOK},
		{name: "error", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("Deactivate", mock.Anything).Return(tt.resp, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(svc, logger.NewNop()).Handle(rec,
				httptest.NewRequest(http.MethodPost, "/api/v1/admin/license/deactivate", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
