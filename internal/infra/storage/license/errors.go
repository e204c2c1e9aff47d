package license

import "errors"

var (
	// ErrLicenseNotFound возвращается, когда лицензия ни разу не сохранялась
	ErrLicenseNotFound = errors.New("license.repository: license not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("license.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("license.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("license.repository: failed to scan row")
)
