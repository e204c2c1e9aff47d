package scheduling

import (
	"time"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	"github.com/m04kA/SMC-SimpleBooking/pkg/types"
)

// SlotsFor возвращает упорядоченный список слотов на дату.
// Пустой список, если день выключен или окно некорректно (end <= start).
// Слот никогда не обрезается: он попадает в список, только если целиком помещается до конца окна.
func SlotsFor(date time.Time, cfg *domain.AvailabilityConfig) []types.TimeString {
	if cfg == nil || !cfg.Day(date.Weekday()).Enabled {
		return []types.TimeString{}
	}

	start := cfg.WindowStart.Minutes()
	end := cfg.WindowEnd.Minutes()
	duration := cfg.SlotDurationMinutes
	if start < 0 || end <= start || duration <= 0 {
		return []types.TimeString{}
	}

	slots := make([]types.TimeString, 0, (end-start)/duration)
	for current := start; current+duration <= end; current += duration {
		slot, err := types.NewTimeStringFromMinutes(current)
		if err != nil {
			break
		}
		slots = append(slots, slot)
	}

	return slots
}

// CapacityFor возвращает максимальное количество бронирований на дату.
// Лимит дня ограничивает число слотов сверху, но не расширяет его; лимит 0 = без ограничения.
func CapacityFor(date time.Time, cfg *domain.AvailabilityConfig) int {
	if cfg == nil {
		return 0
	}
	day := cfg.Day(date.Weekday())
	if !day.Enabled {
		return 0
	}

	fullCount := len(SlotsFor(date, cfg))
	if day.DailyLimit <= 0 {
		return fullCount
	}
	return min(fullCount, day.DailyLimit)
}

// DayOverview собирает ячейку календаря месяца
func DayOverview(date time.Time, cfg *domain.AvailabilityConfig, booked int) domain.DayOverview {
	capacity := CapacityFor(date, cfg)

	return domain.DayOverview{
		Date:      date,
		Booked:    booked,
		Capacity:  capacity,
		Available: max(0, capacity-booked),
		Enabled:   capacity > 0,
	}
}

// DaySlots возвращает слоты дня с занятостью.
// Слот доступен, если он свободен и дневная вместимость не исчерпана.
func DaySlots(date time.Time, cfg *domain.AvailabilityConfig, dayBooked int, slotBooked map[types.TimeString]int) []domain.SlotAvailability {
	slots := SlotsFor(date, cfg)
	capacity := CapacityFor(date, cfg)

	result := make([]domain.SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		booked := slotBooked[slot]
		result = append(result, domain.SlotAvailability{
			Time:      slot,
			Booked:    booked,
			Available: booked < 1 && dayBooked < capacity,
		})
	}

	return result
}

// DaysOfMonth возвращает все даты месяца (UTC, полночь)
func DaysOfMonth(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := make([]time.Time, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
