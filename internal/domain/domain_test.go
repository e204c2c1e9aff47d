package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAvailabilityConfig(t *testing.T) {
	cfg := DefaultAvailabilityConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30, cfg.SlotDurationMinutes)
	assert.Len(t, cfg.Days, 7)
	assert.Equal(t, DaySchedule{Enabled: true, DailyLimit: 16}, cfg.Day(time.Monday))
	assert.Equal(t, DaySchedule{Enabled: true, DailyLimit: 16}, cfg.Day(time.Friday))
	assert.Equal(t, DaySchedule{}, cfg.Day(time.Saturday))
	assert.Equal(t, DaySchedule{}, cfg.Day(time.Sunday))
}

func TestAvailabilityConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *AvailabilityConfig)
		wantErr error
	}{
		{name: "duration too small", mutate: func(c *AvailabilityConfig) { c.SlotDurationMinutes = 4 }, wantErr: ErrInvalidSlotDuration},
		{name: "bad start", mutate: func(c *AvailabilityConfig) { c.WindowStart = "9:00" }, wantErr: ErrInvalidWindow},
		{name: "bad end", mutate: func(c *AvailabilityConfig) { c.WindowEnd = "25:00" }, wantErr: ErrInvalidWindow},
		{name: "negative limit", mutate: func(c *AvailabilityConfig) {
			c.Days[time.Tuesday] = DaySchedule{Enabled: true, DailyLimit: -1}
		}, wantErr: ErrInvalidDailyLimit},
		{name: "inverted window is allowed", mutate: func(c *AvailabilityConfig) {
			c.WindowStart, c.WindowEnd = "17:00", "09:00"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultAvailabilityConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAvailabilityConfig_Normalize(t *testing.T) {
	cfg := &AvailabilityConfig{Days: map[time.Weekday]DaySchedule{time.Monday: {Enabled: true}}}
	cfg.Normalize()

	assert.Len(t, cfg.Days, 7)
	assert.True(t, cfg.Day(time.Monday).Enabled)
	assert.False(t, cfg.Day(time.Sunday).Enabled)
}

func TestParseWeekday(t *testing.T) {
	wd, err := ParseWeekday("Wednesday")
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, wd)
	assert.Equal(t, "wednesday", WeekdayName(wd))

	_, err = ParseWeekday("funday")
	assert.ErrorIs(t, err, ErrUnknownWeekday)
}

func TestMaskPurchaseCode(t *testing.T) {
	assert.Equal(t, "abcd****mnop", MaskPurchaseCode("abcdefghmnop"))
	assert.Equal(t, "****", MaskPurchaseCode("abcd"))
	assert.Equal(t, "", MaskPurchaseCode("  "))
}

func TestLicense_ExpiredAndGrace(t *testing.T) {
	now := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, (&License{}).Expired(now))
	assert.True(t, (&License{ValidUntil: &past}).Expired(now))
	assert.True(t, (&License{GraceUntil: &future}).InGrace(now))
	assert.False(t, (&License{GraceUntil: &past}).InGrace(now))
}
