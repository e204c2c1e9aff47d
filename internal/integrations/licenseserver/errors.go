package licenseserver

import "errors"

var (
	// ErrNotConfigured возвращается, если адрес сервера лицензий не задан
	ErrNotConfigured = errors.New("licenseserver client: server url is not configured")

	// ErrInternal возвращается при внутренних ошибках клиента (сеть, таймаут)
	ErrInternal = errors.New("licenseserver client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервера
	ErrInvalidResponse = errors.New("licenseserver client: invalid response")
)
