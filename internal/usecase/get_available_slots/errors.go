package get_available_slots

import "errors"

var (
	// ErrVendorNotFound возвращается, когда вендор не найден
	ErrVendorNotFound = errors.New("get_available_slots: vendor not found")

	// ErrVendorNotAvailable возвращается, когда вендор ещё не одобрен
	ErrVendorNotAvailable = errors.New("get_available_slots: vendor is not available for booking")

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата дальше горизонта бронирования
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
