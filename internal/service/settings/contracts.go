package settings

import (
	"context"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек доступности
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.AvailabilityConfig, error)
	Save(ctx context.Context, cfg *domain.AvailabilityConfig) (*domain.AvailabilityConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
