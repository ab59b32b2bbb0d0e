package payment

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// chargeRequest тело запроса к внешнему шлюзу
// Сумма передаётся в минимальных единицах валюты (пайсы для INR)
type chargeRequest struct {
	AmountMinor    int64  `json:"amount"`
	Currency       string `json:"currency"`
	Description    string `json:"description,omitempty"`
	Method         string `json:"method"`
	CardNumber     string `json:"card_number,omitempty"`
	CardExpiry     string `json:"card_expiry,omitempty"`
	CardCVC        string `json:"card_cvc,omitempty"`
	UPIID          string `json:"upi_id,omitempty"`
	BankAccount    string `json:"bank_account,omitempty"`
	WalletProvider string `json:"wallet_provider,omitempty"`
}

// chargeResponse ответ внешнего шлюза
type chargeResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Error         string `json:"error"`
}
