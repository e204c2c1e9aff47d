package get_license_status

import (
	"context"

	"github.com/m04kA/SMC-SimpleBooking/internal/service/license/models"
)

type LicenseService interface {
	Status(ctx context.Context) (*models.StatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
