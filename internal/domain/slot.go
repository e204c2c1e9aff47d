package domain

import (
	"time"

	"github.com/m04kA/SMC-SimpleBooking/pkg/types"
)

// DayOverview is the month calendar cell for one date
type DayOverview struct {
	Date      time.Time
	Booked    int
	Capacity  int
	Available int
	Enabled   bool
}

// SlotAvailability is one bookable slot of a day with its occupancy
type SlotAvailability struct {
	Time      types.TimeString
	Booked    int
	Available bool
}
