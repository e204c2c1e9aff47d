package update_settings

import (
	"github.com/m04kA/SMC-SimpleBooking/internal/service/settings/models"
)

// DaySettings HTTP модель настроек дня недели
type DaySettings struct {
	Enabled    bool `json:"enabled"`
	DailyLimit int  `json:"dailyLimit"`
}

// UpdateSettingsRequest HTTP request model
type UpdateSettingsRequest struct {
	SlotDurationMinutes int                    `json:"slotDurationMinutes"`
	WindowStart         string                 `json:"windowStart"`
	WindowEnd           string                 `json:"windowEnd"`
	Days                map[string]DaySettings `json:"days"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest() *models.UpdateSettingsRequest {
	days := make(map[string]models.DaySettings, len(r.Days))
	for name, day := range r.Days {
		days[name] = models.DaySettings{
			Enabled:    day.Enabled,
			DailyLimit: day.DailyLimit,
		}
	}

	return &models.UpdateSettingsRequest{
		SlotDurationMinutes: r.SlotDurationMinutes,
		WindowStart:         r.WindowStart,
		WindowEnd:           r.WindowEnd,
		Days:                days,
	}
}
