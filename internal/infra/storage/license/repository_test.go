package license

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
)

var licenseColumns = []string{
	"status", "purchase_code", "license_key", "customer", "source", "valid_until",
	"last_checked_at", "grace_until", "domain", "instance_id", "last_error", "signature", "updated_at",
}

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewRepository(dbmetrics.Wrap(sqlDB, nil)), mock
}

func TestRepository_Get(t *testing.T) {
	repo, mock := newRepo(t)
	checked := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM license_state WHERE id = $1")).
		WithArgs(licenseRowID).
		WillReturnRows(sqlmock.NewRows(licenseColumns).AddRow(
			"active", "sealed", "KEY-1", "ACME", "envato", nil,
			checked, checked.AddDate(0, 0, 7), "booking.example.com", "inst", "", "sig", checked,
		))

	l, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.LicenseStatusActive, l.Status)
	assert.Equal(t, domain.LicenseSourceEnvato, l.Source)
	assert.Nil(t, l.ValidUntil)
	require.NotNil(t, l.LastCheckedAt)
	assert.Equal(t, checked, *l.LastCheckedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM license_state").WillReturnRows(sqlmock.NewRows(licenseColumns))

	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, ErrLicenseNotFound)
}

func TestRepository_Save(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO license_state")).
		WithArgs(licenseRowID, "inactive", "", "", "", "", nil, nil, nil, "booking.example.com", "inst", "", "sig", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), &domain.License{
		Status:     domain.LicenseStatusInactive,
		Domain:     "booking.example.com",
		InstanceID: "inst",
		Signature:  "sig",
		UpdatedAt:  now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
