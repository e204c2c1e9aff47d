package get_day_slots

import (
	"time"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	getDaySlots "github.com/m04kA/SMC-SimpleBooking/internal/usecase/get_day_slots"
)

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	Date     string    `json:"date"`
	Booked   int       `json:"booked"`
	Capacity int       `json:"capacity"`
	Slots    []DaySlot `json:"slots"`
}

// DaySlot модель временного слота
type DaySlot struct {
	Time      string `json:"time"`
	Booked    int    `json:"booked"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySlots.Response) *DaySlotsResponse {
	slots := make([]DaySlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = DaySlot{
			Time:      slot.Time.String(),
			Booked:    slot.Booked,
			Available: slot.Available,
		}
	}

	return &DaySlotsResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		Booked:   resp.Booked,
		Capacity: resp.Capacity,
		Slots:    slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметра пути
func ToUseCaseRequest(dateStr string) (*getDaySlots.Request, error) {
	// Парсим дату
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.UTC)
	if err != nil {
		return nil, err
	}

	return &getDaySlots.Request{
		Date: date,
	}, nil
}
