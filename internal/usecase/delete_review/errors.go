package delete_review

import "errors"

var (
	// ErrReviewNotFound возвращается, когда отзыв не найден у указанного вендора
	ErrReviewNotFound = errors.New("delete_review: review not found")

	// ErrVendorNotFound возвращается, когда вендор не найден
	ErrVendorNotFound = errors.New("delete_review: vendor not found")

	// ErrAccessDenied возвращается, когда отзыв удаляет не автор и не администратор
	ErrAccessDenied = errors.New("delete_review: access denied")

	// ErrAggregateConflict возвращается, когда конфликт обновления рейтинга не разрешился за отведённые попытки
	ErrAggregateConflict = errors.New("delete_review: aggregate update conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("delete_review: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("delete_review: internal error")
)
