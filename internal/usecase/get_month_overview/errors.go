package get_month_overview

import "errors"

var (
	// ErrInvalidMonth возвращается при году или месяце вне допустимого диапазона
	ErrInvalidMonth = errors.New("get_month_overview: invalid year or month")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_month_overview: internal error")
)
