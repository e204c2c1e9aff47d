package license

import "errors"

var (
	// ErrInvalidPurchaseCode возвращается, если после очистки код покупки пуст
	ErrInvalidPurchaseCode = errors.New("license: invalid purchase code")

	// ErrRejected возвращается, когда сервер лицензий отклонил код
	ErrRejected = errors.New("license: rejected by license server")

	// ErrServerNotConfigured возвращается, если адрес сервера лицензий не задан
	ErrServerNotConfigured = errors.New("license: license server is not configured")

	// ErrServerUnavailable возвращается при сетевой ошибке или некорректном ответе сервера
	ErrServerUnavailable = errors.New("license: license server unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("license: internal error")
)
