package middleware

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SimpleBooking/internal/service/auth"
)

// TokenParser проверяет токен администратора
type TokenParser interface {
	ParseToken(tokenString string) (*auth.Claims, error)
}

// LicenseChecker сообщает, разрешена ли работа сервиса
type LicenseChecker interface {
	CanRun(ctx context.Context) (bool, error)
}

// HTTPRecorder учитывает обработанные запросы
type HTTPRecorder interface {
	RecordHTTP(method, path string, status int, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
