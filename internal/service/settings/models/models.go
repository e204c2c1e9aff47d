package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	"github.com/m04kA/SMC-SimpleBooking/pkg/types"
)

// Request модели

// DaySettings настройки одного дня недели
type DaySettings struct {
	Enabled    bool `json:"enabled"`
	DailyLimit int  `json:"dailyLimit"` // 0 = вместимость равна числу слотов
}

// UpdateSettingsRequest запрос на полную замену настроек доступности.
// Отсутствующий в days день недели сохраняется выключенным.
type UpdateSettingsRequest struct {
	SlotDurationMinutes int                    `json:"slotDurationMinutes"`
	WindowStart         string                 `json:"windowStart"` // "09:00"
	WindowEnd           string                 `json:"windowEnd"`   // "17:00"
	Days                map[string]DaySettings `json:"days"`        // ключ: "monday" ... "sunday"
}

// Response модели

// SettingsResponse ответ с текущими настройками доступности
type SettingsResponse struct {
	SlotDurationMinutes int                    `json:"slotDurationMinutes"`
	WindowStart         string                 `json:"windowStart"`
	WindowEnd           string                 `json:"windowEnd"`
	Days                map[string]DaySettings `json:"days"`
	UpdatedAt           *time.Time             `json:"updatedAt,omitempty"` // nil для настроек по умолчанию
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.AvailabilityConfig) *SettingsResponse {
	if c == nil {
		return nil
	}

	days := make(map[string]DaySettings, len(domain.Weekdays))
	for _, wd := range domain.Weekdays {
		day := c.Day(wd)
		days[domain.WeekdayName(wd)] = DaySettings{
			Enabled:    day.Enabled,
			DailyLimit: day.DailyLimit,
		}
	}

	resp := &SettingsResponse{
		SlotDurationMinutes: c.SlotDurationMinutes,
		WindowStart:         c.WindowStart.String(),
		WindowEnd:           c.WindowEnd.String(),
		Days:                days,
	}
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// ToDomainConfig конвертирует запрос в domain модель.
// Возвращает ошибку для неизвестного названия дня недели.
func (r *UpdateSettingsRequest) ToDomainConfig() (*domain.AvailabilityConfig, error) {
	cfg := &domain.AvailabilityConfig{
		SlotDurationMinutes: r.SlotDurationMinutes,
		WindowStart:         types.TimeString(r.WindowStart),
		WindowEnd:           types.TimeString(r.WindowEnd),
		Days:                make(map[time.Weekday]domain.DaySchedule, len(domain.Weekdays)),
	}

	for name, day := range r.Days {
		wd, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, name)
		}
		cfg.Days[wd] = domain.DaySchedule{
			Enabled:    day.Enabled,
			DailyLimit: day.DailyLimit,
		}
	}
	cfg.Normalize()

	return cfg, nil
}
