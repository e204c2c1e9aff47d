package scheduling

import (
	"slices"
	"time"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	"github.com/m04kA/SMC-SimpleBooking/pkg/types"
)

// Reason причина отказа в бронировании
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonInvalidSlot время не входит в слоты даты
	ReasonInvalidSlot
	// ReasonDayFull дневная вместимость исчерпана
	ReasonDayFull
	// ReasonSlotTaken слот уже занят
	ReasonSlotTaken
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "admitted"
	case ReasonInvalidSlot:
		return "invalid_slot"
	case ReasonDayFull:
		return "day_full"
	case ReasonSlotTaken:
		return "slot_taken"
	default:
		return "unknown"
	}
}

// Decision результат проверки допуска
type Decision struct {
	Admit  bool
	Reason Reason
}

// CanAdmit решает, можно ли принять бронирование на (date, slot).
// Счетчики должны быть прочитаны из хранилища непосредственно перед вызовом.
// Проверки идут в порядке: слот существует, день не заполнен, слот свободен.
func CanAdmit(
	date time.Time,
	slot types.TimeString,
	cfg *domain.AvailabilityConfig,
	bookedForDate int,
	bookedForSlot int,
) Decision {
	if !slices.Contains(SlotsFor(date, cfg), slot) {
		return Decision{Reason: ReasonInvalidSlot}
	}

	if bookedForDate >= CapacityFor(date, cfg) {
		return Decision{Reason: ReasonDayFull}
	}

	if bookedForSlot >= 1 {
		return Decision{Reason: ReasonSlotTaken}
	}

	return Decision{Admit: true, Reason: ReasonNone}
}
