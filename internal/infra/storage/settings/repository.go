package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	"github.com/m04kA/SMC-SimpleBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SimpleBooking/pkg/psqlbuilder"
)

const (
	tableSettings = "availability_settings"
	tableDays     = "availability_days"

	// Настройки хранятся одной строкой
	settingsRowID = 1
)

// Repository репозиторий настроек доступности (одна строка + по строке на день недели)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get загружает настройки. Дни недели без строки в БД считаются выключенными.
func (r *Repository) Get(ctx context.Context) (*domain.AvailabilityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"slot_duration_minutes",
		"window_start",
		"window_end",
		"updated_at",
	).
		From(tableSettings).
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	cfg := &domain.AvailabilityConfig{Days: make(map[time.Weekday]domain.DaySchedule, len(domain.Weekdays))}
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.SlotDurationMinutes,
		&cfg.WindowStart,
		&cfg.WindowEnd,
		&cfg.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Select("weekday", "enabled", "daily_limit").
		From(tableDays).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build days query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - execute days query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name string
			day  domain.DaySchedule
		)
		if err := rows.Scan(&name, &day.Enabled, &day.DailyLimit); err != nil {
			return nil, fmt.Errorf("%w: Get - scan day: %v", ErrScanRow, err)
		}
		wd, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("%w: Get - %v", ErrScanRow, err)
		}
		cfg.Days[wd] = day
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Get - rows error: %v", ErrScanRow, err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Save перезаписывает настройки целиком.
// Вызывать внутри транзакции, чтобы строка настроек и дни недели менялись атомарно.
func (r *Repository) Save(ctx context.Context, cfg *domain.AvailabilityConfig) (*domain.AvailabilityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableSettings).
		Columns("id", "slot_duration_minutes", "window_start", "window_end").
		Values(settingsRowID, cfg.SlotDurationMinutes, cfg.WindowStart, cfg.WindowEnd).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"slot_duration_minutes = EXCLUDED.slot_duration_minutes, " +
			"window_start = EXCLUDED.window_start, " +
			"window_end = EXCLUDED.window_end, " +
			"updated_at = NOW() " +
			"RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&cfg.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.Normalize()
	daysInsert := psqlbuilder.Insert(tableDays).Columns("weekday", "enabled", "daily_limit")
	for _, wd := range domain.Weekdays {
		day := cfg.Day(wd)
		daysInsert = daysInsert.Values(domain.WeekdayName(wd), day.Enabled, day.DailyLimit)
	}

	query, args, err = daysInsert.
		Suffix("ON CONFLICT (weekday) DO UPDATE SET " +
			"enabled = EXCLUDED.enabled, " +
			"daily_limit = EXCLUDED.daily_limit").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build days upsert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Save - execute days upsert: %v", ErrExecQuery, err)
	}

	return cfg, nil
}
