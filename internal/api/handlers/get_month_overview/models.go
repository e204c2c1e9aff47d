package get_month_overview

import (
	"strconv"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	getMonthOverview "github.com/m04kA/SMC-SimpleBooking/internal/usecase/get_month_overview"
)

// MonthOverviewResponse HTTP response model
type MonthOverviewResponse struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []DayOverview `json:"days"`
}

// DayOverview ячейка календаря
type DayOverview struct {
	Date      string `json:"date"`
	Booked    int    `json:"booked"`
	Capacity  int    `json:"capacity"`
	Available int    `json:"available"`
	Enabled   bool   `json:"enabled"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getMonthOverview.Response) *MonthOverviewResponse {
	days := make([]DayOverview, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = DayOverview{
			Date:      day.Date.Format(domain.DateFormat),
			Booked:    day.Booked,
			Capacity:  day.Capacity,
			Available: day.Available,
			Enabled:   day.Enabled,
		}
	}

	return &MonthOverviewResponse{
		Year:  resp.Year,
		Month: int(resp.Month),
		Days:  days,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути
func ToUseCaseRequest(yearStr, monthStr string) (*getMonthOverview.Request, error) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, err
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return nil, err
	}

	return &getMonthOverview.Request{
		Year:  year,
		Month: month,
	}, nil
}
