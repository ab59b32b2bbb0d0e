package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPaymentMethod возвращается при неизвестном способе оплаты
	ErrInvalidPaymentMethod = errors.New("create_booking: invalid payment method")

	// ErrPaymentFailed возвращается, когда шлюз отклонил оплату, вернул ошибку или не ответил вовремя.
	// Бронирование в этом случае не создаётся
	ErrPaymentFailed = errors.New("create_booking: payment failed")

	// ErrInconsistency возвращается, когда оплата прошла, а бронирование не сохранилось
	ErrInconsistency = errors.New("create_booking: payment captured but booking was not saved")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// InconsistencyError оплата списана, бронирование не сохранено.
// Повторять оплату нельзя, запись разбирается вручную по TransactionID
type InconsistencyError struct {
	TransactionID string
	Cause         error
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("%s: transaction %s: %v", ErrInconsistency, e.TransactionID, e.Cause)
}

// Is позволяет сравнивать через errors.Is(err, ErrInconsistency)
func (e *InconsistencyError) Is(target error) bool {
	return target == ErrInconsistency
}

// Unwrap возвращает исходную ошибку сохранения
func (e *InconsistencyError) Unwrap() error {
	return e.Cause
}
