package events

import (
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// Типы событий, они же routing key
const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"
	TypeReviewAdded          = "review.added"
	TypeReviewDeleted        = "review.deleted"
)

// Event событие домена, публикуется после коммита
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type bookingPayload struct {
	BookingID     int64    `json:"booking_id"`
	UserID        int64    `json:"user_id"`
	VendorID      int64    `json:"vendor_id"`
	Date          string   `json:"date"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	Status        string   `json:"status"`
	TransactionID *string  `json:"transaction_id,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
}

type statusChangedPayload struct {
	BookingID int64  `json:"booking_id"`
	VendorID  int64  `json:"vendor_id"`
	UserID    int64  `json:"user_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	ActorID   int64  `json:"actor_id"`
	ActorRole string `json:"actor_role"`
}

type reviewPayload struct {
	ReviewID    int64   `json:"review_id"`
	VendorID    int64   `json:"vendor_id"`
	UserID      int64   `json:"user_id"`
	Rating      int     `json:"rating"`
	VendorScore float64 `json:"vendor_rating"`
	ReviewCount int     `json:"vendor_review_count"`
}

// BookingCreated событие создания бронирования
func BookingCreated(b *domain.Booking, at time.Time) Event {
	return Event{
		Type:       TypeBookingCreated,
		OccurredAt: at,
		Payload: bookingPayload{
			BookingID:     b.ID,
			UserID:        b.UserID,
			VendorID:      b.VendorID,
			Date:          b.Date.Format(domain.DateFormat),
			StartTime:     b.TimeSlot.Start.String(),
			EndTime:       b.TimeSlot.End.String(),
			Status:        string(b.Status),
			TransactionID: b.TransactionID,
			Amount:        b.Amount,
		},
	}
}

// BookingStatusChanged событие смены статуса
func BookingStatusChanged(b *domain.Booking, from domain.BookingStatus, actor *domain.Identity, at time.Time) Event {
	return Event{
		Type:       TypeBookingStatusChanged,
		OccurredAt: at,
		Payload: statusChangedPayload{
			BookingID: b.ID,
			VendorID:  b.VendorID,
			UserID:    b.UserID,
			From:      string(from),
			To:        string(b.Status),
			ActorID:   actor.UserID,
			ActorRole: string(actor.Role),
		},
	}
}

// ReviewAdded событие добавления отзыва с новым агрегатом вендора
func ReviewAdded(r *domain.Review, agg domain.RatingAggregate, at time.Time) Event {
	return reviewEvent(TypeReviewAdded, r, agg, at)
}

// ReviewDeleted событие удаления отзыва с новым агрегатом вендора
func ReviewDeleted(r *domain.Review, agg domain.RatingAggregate, at time.Time) Event {
	return reviewEvent(TypeReviewDeleted, r, agg, at)
}

func reviewEvent(eventType string, r *domain.Review, agg domain.RatingAggregate, at time.Time) Event {
	return Event{
		Type:       eventType,
		OccurredAt: at,
		Payload: reviewPayload{
			ReviewID:    r.ID,
			VendorID:    r.VendorID,
			UserID:      r.UserID,
			Rating:      r.Rating,
			VendorScore: agg.Rating,
			ReviewCount: agg.Count,
		},
	}
}
