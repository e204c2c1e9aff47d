package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	"github.com/m04kA/SMC-SimpleBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	LockDate(ctx context.Context, date time.Time) error
	CountByDate(ctx context.Context, date time.Time) (int, error)
	CountBySlot(ctx context.Context, date time.Time, startTime types.TimeString) (int, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SettingsRepository интерфейс репозитория настроек доступности
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.AvailabilityConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AdmissionRecorder учитывает решения о допуске (метрики)
type AdmissionRecorder interface {
	RecordAdmission(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
