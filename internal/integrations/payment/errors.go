package payment

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payment client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("payment client: invalid response")
)

// Причины отказа, которые шлюз возвращает в PaymentResult.Error
const (
	declineInvalidAmount = "invalid payment amount"
	declineMissingCard   = "missing card details"
	declineMissingUPI    = "missing UPI ID"
	declineMissingBank   = "missing bank account details"
	declineMissingWallet = "missing wallet provider"
	declineUnsupported   = "unsupported payment method"
	declineRejected      = "payment failed, please try again"
)
