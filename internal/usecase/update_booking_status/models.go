package update_booking_status

import "github.com/m04kA/WeddingMarketService/internal/domain"

// Request входные данные для смены статуса
type Request struct {
	BookingID int64
	Actor     *domain.Identity
	Status    domain.BookingStatus
}

// Response бронирование после смены статуса
type Response struct {
	Booking *domain.Booking
}
