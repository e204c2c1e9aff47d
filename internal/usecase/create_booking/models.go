package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SimpleBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Contact   string           // Контактный номер в том виде, как его ввел посетитель
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	Contact     string // Очищенный контакт
	BookingDate time.Time
	StartTime   types.TimeString
	CreatedAt   time.Time
}
