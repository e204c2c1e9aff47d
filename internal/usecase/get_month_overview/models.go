package get_month_overview

import (
	"time"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
)

// Request модель запроса обзора месяца
type Request struct {
	Year  int
	Month int // 1..12
}

// Response обзор месяца: по ячейке на каждый день
type Response struct {
	Year  int
	Month time.Month
	Days  []domain.DayOverview
}
