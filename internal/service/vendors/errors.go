package vendors

import "errors"

var (
	// ErrVendorNotFound возвращается, когда вендор не найден
	ErrVendorNotFound = errors.New("vendor not found")

	// ErrVendorAlreadyExists возвращается, когда у пользователя уже есть профиль вендора
	ErrVendorAlreadyExists = errors.New("vendor profile already exists")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTimeSlot возвращается при некорректном расписании
	ErrInvalidTimeSlot = errors.New("invalid time slot")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
