package license

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SimpleBooking/internal/domain"
	"github.com/m04kA/SMC-SimpleBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SimpleBooking/pkg/psqlbuilder"
)

const (
	tableLicense = "license_state"
	licenseRowID = 1
)

// Repository хранит единственную запись о лицензии установки
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория лицензии
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает запись лицензии
func (r *Repository) Get(ctx context.Context) (*domain.License, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"status",
		"purchase_code",
		"license_key",
		"customer",
		"source",
		"valid_until",
		"last_checked_at",
		"grace_until",
		"domain",
		"instance_id",
		"last_error",
		"signature",
		"updated_at",
	).
		From(tableLicense).
		Where(squirrel.Eq{"id": licenseRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var l domain.License
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&l.Status,
		&l.PurchaseCode,
		&l.LicenseKey,
		&l.Customer,
		&l.Source,
		&l.ValidUntil,
		&l.LastCheckedAt,
		&l.GraceUntil,
		&l.Domain,
		&l.InstanceID,
		&l.LastError,
		&l.Signature,
		&l.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLicenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan license: %v", ErrScanRow, err)
	}

	return &l, nil
}

// Save перезаписывает запись лицензии
func (r *Repository) Save(ctx context.Context, l *domain.License) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableLicense).
		Columns(
			"id",
			"status",
			"purchase_code",
			"license_key",
			"customer",
			"source",
			"valid_until",
			"last_checked_at",
			"grace_until",
			"domain",
			"instance_id",
			"last_error",
			"signature",
			"updated_at",
		).
		Values(
			licenseRowID,
			l.Status,
			l.PurchaseCode,
			l.LicenseKey,
			l.Customer,
			l.Source,
			l.ValidUntil,
			l.LastCheckedAt,
			l.GraceUntil,
			l.Domain,
			l.InstanceID,
			l.LastError,
			l.Signature,
			l.UpdatedAt,
		).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"status = EXCLUDED.status, " +
			"purchase_code = EXCLUDED.purchase_code, " +
			"license_key = EXCLUDED.license_key, " +
			"customer = EXCLUDED.customer, " +
			"source = EXCLUDED.source, " +
			"valid_until = EXCLUDED.valid_until, " +
			"last_checked_at = EXCLUDED.last_checked_at, " +
			"grace_until = EXCLUDED.grace_until, " +
			"domain = EXCLUDED.domain, " +
			"instance_id = EXCLUDED.instance_id, " +
			"last_error = EXCLUDED.last_error, " +
			"signature = EXCLUDED.signature, " +
			"updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}
