package jobs

import (
	"context"

	"github.com/m04kA/SMC-SimpleBooking/internal/service/license/models"
)

// LicenseRechecker перепроверяет лицензию на сервере
type LicenseRechecker interface {
	Recheck(ctx context.Context, force bool) (*models.ActionResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
