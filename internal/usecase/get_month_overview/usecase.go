package get_month_overview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SimpleBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SimpleBooking/internal/scheduling"
)

// UseCase use case для обзора загрузки месяца
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Execute возвращает для каждого дня месяца booked/capacity/available/enabled
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetMonthOverview: year=%d, month=%d", req.Year, req.Month)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetMonthOverview: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем настройки доступности
	cfg, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetMonthOverview: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		uc.logger.Info("GetMonthOverview: settings not found, using defaults")
		cfg = domain.DefaultAvailabilityConfig()
	}

	// 3. Количество бронирований по дням месяца
	days := scheduling.DaysOfMonth(req.Year, time.Month(req.Month))
	counts, err := uc.bookingRepo.CountByDateRange(ctx, days[0], days[len(days)-1])
	if err != nil {
		uc.logger.Error("GetMonthOverview: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	// 4. Собираем ячейки календаря
	overview := make([]domain.DayOverview, 0, len(days))
	for _, day := range days {
		overview = append(overview, scheduling.DayOverview(day, cfg, counts[day.Format(domain.DateFormat)]))
	}

	return &Response{
		Year:  req.Year,
		Month: time.Month(req.Month),
		Days:  overview,
	}, nil
}
