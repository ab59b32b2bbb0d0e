package add_review

import "errors"

var (
	// ErrVendorNotFound возвращается, когда вендор не найден
	ErrVendorNotFound = errors.New("add_review: vendor not found")

	// ErrInvalidRating возвращается, когда оценка вне диапазона 1..5
	ErrInvalidRating = errors.New("add_review: rating must be between 1 and 5")

	// ErrInvalidText возвращается, когда текст отзыва слишком короткий или длинный
	ErrInvalidText = errors.New("add_review: invalid review text")

	// ErrReviewNotAllowed возвращается, когда у автора нет завершённого бронирования у вендора
	ErrReviewNotAllowed = errors.New("add_review: completed booking required")

	// ErrAggregateConflict возвращается, когда конфликт обновления рейтинга не разрешился за отведённые попытки
	ErrAggregateConflict = errors.New("add_review: aggregate update conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("add_review: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("add_review: internal error")
)
