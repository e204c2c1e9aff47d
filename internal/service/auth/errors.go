package auth

import "errors"

var (
	// ErrNotConfigured возвращается, если учетные данные администратора не заданы
	ErrNotConfigured = errors.New("auth: admin credentials are not configured")

	// ErrInvalidCredentials возвращается при неверном логине или пароле
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrInvalidToken возвращается для просроченного, поддельного или пустого токена
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)
