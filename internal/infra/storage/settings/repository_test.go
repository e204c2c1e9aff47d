package settings

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	"github.com/m04kA/SMC-SimpleBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SimpleBooking/pkg/types"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewRepository(dbmetrics.Wrap(sqlDB, nil)), mock
}

func TestRepository_Get(t *testing.T) {
	repo, mock := newRepo(t)
	updatedAt := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT slot_duration_minutes, window_start, window_end, updated_at FROM availability_settings WHERE id = $1")).
		WithArgs(settingsRowID).
		WillReturnRows(sqlmock.NewRows([]string{"slot_duration_minutes", "window_start", "window_end", "updated_at"}).
			AddRow(20, "08:00:00", "12:00:00", updatedAt))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT weekday, enabled, daily_limit FROM availability_days")).
		WillReturnRows(sqlmock.NewRows([]string{"weekday", "enabled", "daily_limit"}).
			AddRow("monday", true, 10).
			AddRow("saturday", false, 0))

	cfg, err := repo.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.SlotDurationMinutes)
	assert.Equal(t, types.TimeString("08:00"), cfg.WindowStart)
	assert.Equal(t, types.TimeString("12:00"), cfg.WindowEnd)
	assert.Equal(t, updatedAt, cfg.UpdatedAt)
	assert.Equal(t, domain.DaySchedule{Enabled: true, DailyLimit: 10}, cfg.Day(time.Monday))
	// Отсутствующие дни дополняются выключенными
	assert.Len(t, cfg.Days, 7)
	assert.False(t, cfg.Day(time.Tuesday).Enabled)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM availability_settings").
		WillReturnRows(sqlmock.NewRows([]string{"slot_duration_minutes", "window_start", "window_end", "updated_at"}))

	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, ErrSettingsNotFound)
}

func TestRepository_Get_UnknownWeekday(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM availability_settings").
		WillReturnRows(sqlmock.NewRows([]string{"slot_duration_minutes", "window_start", "window_end", "updated_at"}).
			AddRow(30, "09:00", "17:00", time.Now()))
	mock.ExpectQuery("FROM availability_days").
		WillReturnRows(sqlmock.NewRows([]string{"weekday", "enabled", "daily_limit"}).AddRow("funday", true, 1))

	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, ErrScanRow)
}

func TestRepository_Save(t *testing.T) {
	repo, mock := newRepo(t)
	updatedAt := time.Date(2025, time.March, 2, 8, 0, 0, 0, time.UTC)
	cfg := domain.DefaultAvailabilityConfig()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO availability_settings (id,slot_duration_minutes,window_start,window_end) VALUES ($1,$2,$3,$4) ON CONFLICT (id) DO UPDATE")).
		WithArgs(settingsRowID, 30, "09:00", "17:00").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updatedAt))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO availability_days (weekday,enabled,daily_limit) VALUES ($1,$2,$3),($4,$5,$6)")).
		WithArgs(
			"monday", true, 16,
			"tuesday", true, 16,
			"wednesday", true, 16,
			"thursday", true, 16,
			"friday", true, 16,
			"saturday", false, 0,
			"sunday", false, 0,
		).
		WillReturnResult(sqlmock.NewResult(0, 7))

	saved, err := repo.Save(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, updatedAt, saved.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}
