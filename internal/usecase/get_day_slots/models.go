package get_day_slots

import (
	"time"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
)

// Request модель запроса слотов на дату
type Request struct {
	Date time.Time // Дата без времени
}

// Response модель ответа со слотами дня
type Response struct {
	Date     time.Time
	Booked   int // Бронирований на дату
	Capacity int // Вместимость дня
	Slots    []domain.SlotAvailability
}
