package deactivate_license

import (
	"context"

	"github.com/m04kA/SMC-SimpleBooking/internal/service/license/models"
)

type LicenseService interface {
	Deactivate(ctx context.Context) (*models.ActionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
