package initiate_booking

import "errors"

var (
	// ErrVendorNotFound возвращается, когда вендор не найден
	ErrVendorNotFound = errors.New("initiate_booking: vendor not found")

	// ErrVendorNotAvailable возвращается, когда вендор ещё не одобрен
	ErrVendorNotAvailable = errors.New("initiate_booking: vendor is not available for booking")

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("initiate_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата дальше горизонта бронирования
	ErrDateTooFarInFuture = errors.New("initiate_booking: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда слот не входит в расписание вендора
	ErrInvalidTimeSlot = errors.New("initiate_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда слот сегодня уже начался
	ErrTooLateToBook = errors.New("initiate_booking: too late to book this slot")

	// ErrNotesTooLong возвращается, когда заметки длиннее допустимого
	ErrNotesTooLong = errors.New("initiate_booking: notes are too long")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("initiate_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("initiate_booking: internal error")
)
