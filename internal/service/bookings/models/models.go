package models

import (
	"time"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
)

// Request модели

// ListBookingsRequest запрос на получение последних бронирований
type ListBookingsRequest struct {
	Limit     int        `json:"limit,omitempty"`     // 0 = DefaultBookingsLimit
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода по дате визита (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода по дате визита (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() domain.BookingsFilter {
	limit := r.Limit
	if limit <= 0 {
		limit = domain.DefaultBookingsLimit
	}
	if limit > domain.MaxBookingsLimit {
		limit = domain.MaxBookingsLimit
	}

	return domain.BookingsFilter{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Limit:     limit,
	}
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64     `json:"id"`
	Contact     string    `json:"contact"`
	BookingDate string    `json:"bookingDate"` // "2025-10-15"
	StartTime   string    `json:"startTime"`   // "10:00"
	CreatedAt   time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:          b.ID,
		Contact:     b.Contact,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		CreatedAt:   b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}
