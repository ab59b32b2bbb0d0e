package create_booking

import (
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// Request входные данные для создания бронирования с оплатой
type Request struct {
	UserID   int64
	VendorID int64
	Date     time.Time
	TimeSlot domain.TimeSlot
	Notes    string
	Payment  domain.PaymentDetails
}

// Response созданное бронирование
type Response struct {
	Booking *domain.Booking
}

// Результаты оплаты для метрик
const (
	paymentApproved = "approved"
	paymentDeclined = "declined"
	paymentError    = "error"
)
