package domain

import (
	"time"

	"github.com/m04kA/SMC-SimpleBooking/pkg/types"
)

// Booking is a submitted appointment. Records are append-only.
type Booking struct {
	ID          int64
	Contact     string
	BookingDate time.Time
	StartTime   types.TimeString
	CreatedAt   time.Time
}

// BookingsFilter narrows the admin bookings list
type BookingsFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}
