package update_booking_status

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrAccessDenied возвращается, когда актор не связан с бронированием
	ErrAccessDenied = errors.New("update_booking_status: access denied")

	// ErrInvalidTransition возвращается, когда переход не разрешён для текущего статуса и роли
	ErrInvalidTransition = errors.New("update_booking_status: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
