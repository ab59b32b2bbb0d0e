package create_booking

import (
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	createBooking "github.com/m04kA/WeddingMarketService/internal/usecase/create_booking"
	"github.com/m04kA/WeddingMarketService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VendorID  int64          `json:"vendorId" validate:"required,gt=0"`
	Date      string         `json:"date" validate:"required"`      // "2026-10-15"
	StartTime string         `json:"startTime" validate:"required"` // "09:00"
	EndTime   string         `json:"endTime" validate:"required"`   // "11:00"
	Notes     string         `json:"notes"`
	Payment   PaymentRequest `json:"payment"`
}

// PaymentRequest платёжные данные; заполняются поля выбранного способа
type PaymentRequest struct {
	Method         string `json:"method" validate:"required"`
	CardNumber     string `json:"cardNumber,omitempty"`
	CardExpiry     string `json:"cardExpiry,omitempty"`
	CardCVC        string `json:"cardCvc,omitempty"`
	UPIID          string `json:"upiId,omitempty"`
	BankAccount    string `json:"bankAccount,omitempty"`
	WalletProvider string `json:"walletProvider,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:   userID,
		VendorID: r.VendorID,
		Date:     date,
		TimeSlot: domain.TimeSlot{Start: start, End: end},
		Notes:    r.Notes,
		Payment: domain.PaymentDetails{
			Method:         domain.PaymentMethod(r.Payment.Method),
			CardNumber:     r.Payment.CardNumber,
			CardExpiry:     r.Payment.CardExpiry,
			CardCVC:        r.Payment.CardCVC,
			UPIID:          r.Payment.UPIID,
			BankAccount:    r.Payment.BankAccount,
			WalletProvider: r.Payment.WalletProvider,
		},
	}, nil
}
