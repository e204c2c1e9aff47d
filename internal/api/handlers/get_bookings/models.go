package get_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	"github.com/m04kA/SMC-SimpleBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(limitStr, fromStr, toStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	// Парсим limit если указан
	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("invalid limit value %q", limitStr)
		}
		req.Limit = limit
	}

	// Парсим from если указан
	if fromStr != "" {
		from, err := time.ParseInLocation(domain.DateFormat, fromStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid from value: %w", err)
		}
		req.StartDate = &from
	}

	// Парсим to если указан
	if toStr != "" {
		to, err := time.ParseInLocation(domain.DateFormat, toStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid to value: %w", err)
		}
		req.EndDate = &to
	}

	return req, nil
}
