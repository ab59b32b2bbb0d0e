package initiate_booking

import (
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// Request входные данные для черновика бронирования
type Request struct {
	UserID   int64
	VendorID int64
	Date     time.Time
	TimeSlot domain.TimeSlot
	Notes    string
}

// Response черновик бронирования, ещё не сохранён
type Response struct {
	Draft *domain.BookingDraft
}
