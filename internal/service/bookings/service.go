package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SimpleBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SimpleBooking/internal/service/bookings/models"
)

// Service сервис для просмотра бронирований администратором
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	if id <= 0 {
		s.logger.Warn("GetByID: invalid booking id=%d", id)
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// List получает последние бронирования, новые первыми
//
// Примеры использования:
// - Последние 100: List(ctx, &ListBookingsRequest{})
// - Визиты на дату: StartDate и EndDate указывают на одну дату
// - Визиты за период: StartDate и EndDate указывают на разные даты
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter := req.ToDomainFilter()

	logMsg := fmt.Sprintf("List: fetching bookings, limit=%d", filter.Limit)
	if req.StartDate != nil {
		logMsg += fmt.Sprintf(", from=%s", req.StartDate.Format(domain.DateFormat))
	}
	if req.EndDate != nil {
		logMsg += fmt.Sprintf(", to=%s", req.EndDate.Format(domain.DateFormat))
	}
	s.logger.Info("%s", logMsg)

	if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		s.logger.Warn("List: start date is after end date")
		return nil, ErrInvalidTimeRange
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}
