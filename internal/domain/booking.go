package domain

import (
	"time"

	"github.com/m04kA/WeddingMarketService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// AllBookingStatuses список всех статусов бронирования
var AllBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	for _, known := range AllBookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no transition is defined out of the status
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// TimeSlot represents a published booking window within a day
type TimeSlot struct {
	Start types.TimeString
	End   types.TimeString
}

// Equal returns true if both bounds match
func (t TimeSlot) Equal(other TimeSlot) bool {
	return t.Start == other.Start && t.End == other.End
}

// Overlaps returns true if the slots share any time
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	return t.Start.IsBefore(other.End) && other.Start.IsBefore(t.End)
}

// Booking represents a vendor booking in the system
type Booking struct {
	ID       int64
	UserID   int64
	VendorID int64
	Date     time.Time
	TimeSlot TimeSlot
	Notes    string
	Status   BookingStatus

	// Payment data, filled once the gateway has captured the amount
	TransactionID *string
	Amount        *float64
	PaymentMethod *PaymentMethod

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies the vendor
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// BookingDraft validated booking request that is not persisted yet.
// It only becomes a Booking after the payment gateway approves the charge.
type BookingDraft struct {
	UserID     int64
	VendorID   int64
	VendorName string
	Date       time.Time
	TimeSlot   TimeSlot
	Notes      string
	Amount     float64
	Currency   string
}

type transition struct {
	from  BookingStatus
	actor Role
	to    BookingStatus
}

// allowedTransitions полная таблица разрешённых переходов. Всё, что не указано, запрещено
var allowedTransitions = map[transition]struct{}{
	{from: StatusPending, actor: RoleUser, to: StatusCancelled}:     {},
	{from: StatusConfirmed, actor: RoleUser, to: StatusCancelled}:   {},
	{from: StatusPending, actor: RoleVendor, to: StatusConfirmed}:   {},
	{from: StatusPending, actor: RoleVendor, to: StatusCancelled}:   {},
	{from: StatusConfirmed, actor: RoleVendor, to: StatusCompleted}: {},
}

// CanTransition reports whether actor may move a booking from one status to another
func CanTransition(from BookingStatus, actor Role, to BookingStatus) bool {
	_, ok := allowedTransitions[transition{from: from, actor: actor, to: to}]
	return ok
}

// BookingsFilter фильтр для выборок бронирований
type BookingsFilter struct {
	UserID   *int64
	VendorID *int64
	Status   *BookingStatus
}

// DateOnly truncates t to midnight of its UTC calendar day.
// Booking dates are compared as calendar days in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
