package domain

import "github.com/m04kA/SMC-SimpleBooking/pkg/types"

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
	DefaultWindowStart         = types.TimeString("09:00")
	DefaultWindowEnd           = types.TimeString("17:00")
	DefaultDailyLimit          = 16
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinContactLength       = 6
	MaxContactLength       = 64
	MinCalendarYear        = 2000
	MaxCalendarYear        = 2100
	DefaultBookingsLimit   = 100
	MaxBookingsLimit       = 1000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
