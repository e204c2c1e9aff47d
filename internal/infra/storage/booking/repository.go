package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	"github.com/m04kA/SMC-SimpleBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SimpleBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SimpleBooking/pkg/types"
)

const (
	tableBookings = "bookings"

	// SQLSTATE unique_violation
	codeUniqueViolation = "23505"

	// Пространство ключей advisory lock для бронирований (classid)
	dateLockNamespace = 0x5B10
)

var bookingColumns = []string{
	"id",
	"contact",
	"booking_date",
	"start_time",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Уникальный индекс (booking_date, start_time) - последний рубеж против двойной записи:
// нарушение возвращается как ErrSlotAlreadyBooked.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns("contact", "booking_date", "start_time").
		Values(booking.Contact, dateParam(booking.BookingDate), booking.StartTime).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.Contact,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return &booking, nil
}

// List возвращает последние бронирования (сначала новые).
// Фильтр по датам опционален, Limit <= 0 заменяется на значение по умолчанию.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultBookingsLimit
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": dateParam(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": dateParam(*filter.EndDate)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountByDate количество бронирований на дату
func (r *Repository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	return r.count(ctx, "CountByDate", squirrel.Eq{"booking_date": dateParam(date)})
}

// CountBySlot количество бронирований на дату и время
func (r *Repository) CountBySlot(ctx context.Context, date time.Time, startTime types.TimeString) (int, error) {
	return r.count(ctx, "CountBySlot",
		squirrel.Eq{"booking_date": dateParam(date)},
		squirrel.Eq{"start_time": startTime},
	)
}

// CountByDateRange количество бронирований по дням в диапазоне [from, to].
// Ключ - дата в формате YYYY-MM-DD, дни без бронирований отсутствуют.
func (r *Repository) CountByDateRange(ctx context.Context, from, to time.Time) (map[string]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booking_date", "COUNT(*)").
		From(tableBookings).
		Where(squirrel.GtOrEq{"booking_date": dateParam(from)}).
		Where(squirrel.LtOrEq{"booking_date": dateParam(to)}).
		GroupBy("booking_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByDateRange - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			date  time.Time
			count int
		)
		if err := rows.Scan(&date, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByDateRange - scan row: %v", ErrScanRow, err)
		}
		counts[date.Format(domain.DateFormat)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByDateRange - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// CountsBySlot количество бронирований по каждому времени начала на дату
func (r *Repository) CountsBySlot(ctx context.Context, date time.Time) (map[types.TimeString]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time", "COUNT(*)").
		From(tableBookings).
		Where(squirrel.Eq{"booking_date": dateParam(date)}).
		GroupBy("start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountsBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountsBySlot - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[types.TimeString]int)
	for rows.Next() {
		var (
			startTime types.TimeString
			count     int
		)
		if err := rows.Scan(&startTime, &count); err != nil {
			return nil, fmt.Errorf("%w: CountsBySlot - scan row: %v", ErrScanRow, err)
		}
		counts[startTime] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountsBySlot - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// LockDate берет транзакционную advisory-блокировку на дату.
// Все проверки и вставка бронирований одной даты выполняются последовательно.
// Блокировка снимается при завершении транзакции.
func (r *Repository) LockDate(ctx context.Context, date time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockDate", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	key := date.Year()*10000 + int(date.Month())*100 + date.Day()
	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1, $2)", dateLockNamespace, key); err != nil {
		return fmt.Errorf("%w: LockDate - execute: %w", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) count(ctx context.Context, op string, conditions ...squirrel.Sqlizer) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").From(tableBookings)
	for _, cond := range conditions {
		selectBuilder = selectBuilder.Where(cond)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %s - execute count: %w", ErrExecQuery, op, err)
	}
	return count, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.Contact,
			&booking.BookingDate,
			&booking.StartTime,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// dateParam передает дату как YYYY-MM-DD, чтобы колонка DATE не зависела от часового пояса соединения
func dateParam(date time.Time) string {
	return date.Format(domain.DateFormat)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation
}
