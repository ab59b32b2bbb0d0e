package domain

import "time"

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetBanking PaymentMethod = "net_banking"
	PaymentWallet     PaymentMethod = "wallet"
)

// IsValid returns true for a supported payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentUPI, PaymentNetBanking, PaymentWallet:
		return true
	default:
		return false
	}
}

// PaymentDetails method-specific data entered by the payer.
// Only the fields of the chosen method are relevant.
type PaymentDetails struct {
	Method         PaymentMethod
	CardNumber     string
	CardExpiry     string
	CardCVC        string
	UPIID          string
	BankAccount    string
	WalletProvider string
}

// PaymentRequest charge sent to the payment gateway
type PaymentRequest struct {
	Amount      float64
	Currency    string
	Description string
	Details     PaymentDetails
}

// PaymentResult outcome reported by the payment gateway
type PaymentResult struct {
	Success       bool
	TransactionID string
	Error         string
}

// PaymentInconsistency payment captured by the gateway without a persisted booking.
// Such records are resolved manually and the charge is never repeated.
type PaymentInconsistency struct {
	ID            int64
	TransactionID string
	UserID        int64
	VendorID      int64
	Amount        float64
	Currency      string
	Method        PaymentMethod
	Error         string
	CreatedAt     time.Time
}
