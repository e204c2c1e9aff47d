package get_day_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SimpleBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SimpleBooking/internal/scheduling"
)

// UseCase use case для получения слотов дня с занятостью
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

// Execute выполняет use case получения слотов.
// Результат носит справочный характер: окончательное решение принимается при создании бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем настройки доступности
	cfg, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetDaySlots: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		uc.logger.Info("GetDaySlots: settings not found, using defaults")
		cfg = domain.DefaultAvailabilityConfig()
	}

	// 3. Считаем бронирования по слотам (одним запросом)
	slotCounts, err := uc.bookingRepo.CountsBySlot(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	dayBooked := 0
	for _, count := range slotCounts {
		dayBooked += count
	}

	// 4. Строим слоты
	capacity := scheduling.CapacityFor(req.Date, cfg)
	slots := scheduling.DaySlots(req.Date, cfg, dayBooked, slotCounts)

	uc.logger.Info("GetDaySlots: date=%s, slots=%d, booked=%d/%d",
		req.Date.Format(domain.DateFormat), len(slots), dayBooked, capacity)

	return &Response{
		Date:     req.Date,
		Booked:   dayBooked,
		Capacity: capacity,
		Slots:    slots,
	}, nil
}
