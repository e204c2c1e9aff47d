package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SimpleBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SimpleBooking/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Contact string `json:"contact"`
	Date    string `json:"date"` // "2025-10-15"
	Time    string `json:"time"` // "10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64  `json:"id"`
	Contact   string `json:"contact"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.ParseInLocation(domain.DateFormat, r.Date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	// Время строго HH:MM
	startTime := types.TimeString(r.Time)
	if err := startTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		Contact:   r.Contact,
		Date:      bookingDate,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		Contact:   resp.Contact,
		Date:      resp.BookingDate.Format(domain.DateFormat),
		Time:      resp.StartTime.String(),
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
