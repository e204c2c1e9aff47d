package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SimpleBooking/pkg/types"
)

var (
	ErrInvalidSlotDuration = errors.New("invalid slot duration")
	ErrInvalidWindow       = errors.New("invalid booking window time")
	ErrInvalidDailyLimit   = errors.New("invalid daily limit")
	ErrUnknownWeekday      = errors.New("unknown weekday")
)

// DaySchedule is the per-weekday booking setting
type DaySchedule struct {
	Enabled    bool
	DailyLimit int // 0 = no explicit limit, capacity equals the slot count
}

// AvailabilityConfig describes when bookings can be made.
// A weekday missing from Days is treated as disabled with limit 0.
type AvailabilityConfig struct {
	SlotDurationMinutes int
	WindowStart         types.TimeString
	WindowEnd           types.TimeString
	Days                map[time.Weekday]DaySchedule
	UpdatedAt           time.Time
}

// Weekdays in display order (Monday first)
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// DefaultAvailabilityConfig returns the configuration used when nothing is persisted
func DefaultAvailabilityConfig() *AvailabilityConfig {
	days := make(map[time.Weekday]DaySchedule, len(Weekdays))
	for _, wd := range Weekdays {
		if wd == time.Saturday || wd == time.Sunday {
			days[wd] = DaySchedule{Enabled: false, DailyLimit: 0}
			continue
		}
		days[wd] = DaySchedule{Enabled: true, DailyLimit: DefaultDailyLimit}
	}

	return &AvailabilityConfig{
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		WindowStart:         DefaultWindowStart,
		WindowEnd:           DefaultWindowEnd,
		Days:                days,
	}
}

// Day returns the schedule for the weekday, zero value when absent
func (c *AvailabilityConfig) Day(wd time.Weekday) DaySchedule {
	if c.Days == nil {
		return DaySchedule{}
	}
	return c.Days[wd]
}

// Normalize fills missing weekdays with the disabled default so every key is present
func (c *AvailabilityConfig) Normalize() {
	if c.Days == nil {
		c.Days = make(map[time.Weekday]DaySchedule, len(Weekdays))
	}
	for _, wd := range Weekdays {
		if _, ok := c.Days[wd]; !ok {
			c.Days[wd] = DaySchedule{}
		}
	}
}

// HasValidWindow reports whether the window can produce slots at all
func (c *AvailabilityConfig) HasValidWindow() bool {
	return c.WindowEnd.Minutes() > c.WindowStart.Minutes()
}

// Validate checks the stored shape. An inverted window is a valid (empty) configuration.
func (c *AvailabilityConfig) Validate() error {
	if c.SlotDurationMinutes < MinSlotDurationMinutes || c.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: must be between %d and %d minutes",
			ErrInvalidSlotDuration, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	if err := c.WindowStart.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidWindow, err)
	}
	if err := c.WindowEnd.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidWindow, err)
	}
	for wd, day := range c.Days {
		if day.DailyLimit < 0 {
			return fmt.Errorf("%w: %s limit must be >= 0", ErrInvalidDailyLimit, WeekdayName(wd))
		}
	}
	return nil
}

// WeekdayName returns the lowercase english weekday name used in the API and storage
func WeekdayName(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}

// ParseWeekday parses a lowercase (case-insensitive) weekday name
func ParseWeekday(name string) (time.Weekday, error) {
	for _, wd := range Weekdays {
		if strings.EqualFold(name, wd.String()) {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, name)
}
