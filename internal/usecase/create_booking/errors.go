package create_booking

import "errors"

var (
	// ErrInvalidContact возвращается, если после очистки контакт короче допустимого
	ErrInvalidContact = errors.New("create_booking: invalid contact")

	// ErrInvalidTimeSlot возвращается, если время не входит в слоты выбранной даты
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrDayFull возвращается, когда вместимость дня исчерпана
	ErrDayFull = errors.New("create_booking: day is fully booked")

	// ErrSlotNotAvailable возвращается, когда слот уже занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
