package create_booking

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
)

// validateRequest валидирует дату и время запроса
func validateRequest(req *Request) error {
	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// normalizeContact оставляет только цифры, '+', '-' и пробельные символы.
// Результат без крайних пробелов должен быть не короче MinContactLength.
func normalizeContact(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '+' || r == '-' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, raw)
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) < domain.MinContactLength {
		return "", fmt.Errorf("%w: contact must contain at least %d allowed characters",
			ErrInvalidContact, domain.MinContactLength)
	}
	if len(cleaned) > domain.MaxContactLength {
		return "", fmt.Errorf("%w: contact is longer than %d characters", ErrInvalidContact, domain.MaxContactLength)
	}

	return cleaned, nil
}
