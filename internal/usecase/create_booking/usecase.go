package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SimpleBooking/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-SimpleBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SimpleBooking/internal/scheduling"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	txManager    TransactionManager
	recorder     AdmissionRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. recorder может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	recorder AdmissionRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		recorder:     recorder,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка допуска повторяется внутри сериализуемой транзакции под блокировкой даты,
// прямо перед вставкой: ответы обзора месяца и слотов дня к этому моменту могли устареть.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, time=%s", req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	contact, err := normalizeContact(req.Contact)
	if err != nil {
		uc.logger.Warn("CreateBooking: contact validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем дату: проверки и вставки одной даты идут строго по очереди
		if err := uc.bookingRepo.LockDate(txCtx, req.Date); err != nil {
			uc.logger.Error("CreateBooking: failed to lock date: %v", err)
			return fmt.Errorf("%w: failed to lock date: %w", ErrInternal, err)
		}

		// 2.2. Получаем настройки доступности
		cfg, err := uc.settingsRepo.Get(txCtx)
		if err != nil {
			if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				uc.logger.Error("CreateBooking: failed to get settings: %v", err)
				return fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
			}
			cfg = domain.DefaultAvailabilityConfig()
			uc.logger.Info("CreateBooking: settings not found, using defaults")
		}

		// 2.3. Свежие счетчики бронирований
		bookedForDate, err := uc.bookingRepo.CountByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count bookings for date: %v", err)
			return fmt.Errorf("%w: failed to count bookings for date: %w", ErrInternal, err)
		}

		bookedForSlot, err := uc.bookingRepo.CountBySlot(txCtx, req.Date, req.StartTime)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count bookings for slot: %v", err)
			return fmt.Errorf("%w: failed to count bookings for slot: %w", ErrInternal, err)
		}

		// 2.4. Решение о допуске
		decision := scheduling.CanAdmit(req.Date, req.StartTime, cfg, bookedForDate, bookedForSlot)
		uc.record(decision.Reason)

		switch decision.Reason {
		case scheduling.ReasonInvalidSlot:
			uc.logger.Warn("CreateBooking: time %s is not a slot of %s", req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrInvalidTimeSlot
		case scheduling.ReasonDayFull:
			uc.logger.Warn("CreateBooking: day %s is full, %d/%d booked",
				req.Date.Format(domain.DateFormat), bookedForDate, scheduling.CapacityFor(req.Date, cfg))
			return ErrDayFull
		case scheduling.ReasonSlotTaken:
			uc.logger.Warn("CreateBooking: slot %s %s already taken", req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotNotAvailable
		}

		// 2.5. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			Contact:     contact,
			BookingDate: req.Date,
			StartTime:   req.StartTime,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotAlreadyBooked) {
				uc.logger.Warn("CreateBooking: unique constraint rejected slot %s %s",
					req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if isBusinessError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:          result.ID,
		Contact:     result.Contact,
		BookingDate: result.BookingDate,
		StartTime:   result.StartTime,
		CreatedAt:   result.CreatedAt,
	}, nil
}

func (uc *UseCase) record(reason scheduling.Reason) {
	if uc.recorder != nil {
		uc.recorder.RecordAdmission(reason.String())
	}
}

func isBusinessError(err error) bool {
	return errors.Is(err, ErrInvalidTimeSlot) ||
		errors.Is(err, ErrDayFull) ||
		errors.Is(err, ErrSlotNotAvailable) ||
		errors.Is(err, ErrInternal)
}
