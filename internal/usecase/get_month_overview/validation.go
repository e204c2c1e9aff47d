package get_month_overview

import (
	"fmt"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
)

// validateRequest валидирует год и месяц
func validateRequest(req *Request) error {
	if req.Year < domain.MinCalendarYear || req.Year > domain.MaxCalendarYear {
		return fmt.Errorf("%w: year must be between %d and %d",
			ErrInvalidMonth, domain.MinCalendarYear, domain.MaxCalendarYear)
	}
	if req.Month < 1 || req.Month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidMonth)
	}
	return nil
}
