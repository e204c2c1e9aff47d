package license

import (
	"context"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	"github.com/m04kA/SMC-SimpleBooking/internal/integrations/licenseserver"
)

// LicenseRepository интерфейс репозитория лицензии
type LicenseRepository interface {
	Get(ctx context.Context) (*domain.License, error)
	Save(ctx context.Context, l *domain.License) error
}

// LicenseServerClient интерфейс клиента сервера лицензий
type LicenseServerClient interface {
	Validate(ctx context.Context, payload *licenseserver.ValidateRequest) (*licenseserver.ValidateResponse, error)
}

// Sealer шифрует код покупки и подписывает запись лицензии
type Sealer interface {
	Seal(plain string) (string, error)
	Open(sealed string) (string, error)
	Sign(data []byte) string
	Verify(data []byte, signature string) bool
}

// CheckRecorder учитывает обращения к серверу лицензий (метрики)
type CheckRecorder interface {
	RecordLicenseCheck(action, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
