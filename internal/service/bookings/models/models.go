package models

import (
	"errors"
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetVendorBookingsRequest запрос на получение бронирований вендора
type GetVendorBookingsRequest struct {
	Actor    *domain.Identity `json:"-"`
	VendorID int64            `json:"vendorId"`
	Status   *string          `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	VendorID  int64  `json:"vendorId"`
	Date      string `json:"date"`      // "2026-10-15"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "11:00"
	Notes     string `json:"notes"`
	Status    string `json:"status"`

	TransactionID *string  `json:"transactionId,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// BookingDraftResponse черновик бронирования перед оплатой
type BookingDraftResponse struct {
	UserID     int64   `json:"userId"`
	VendorID   int64   `json:"vendorId"`
	VendorName string  `json:"vendorName"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Notes      string  `json:"notes"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		VendorID:      b.VendorID,
		Date:          b.Date.Format(domain.DateFormat),
		StartTime:     b.TimeSlot.Start.String(),
		EndTime:       b.TimeSlot.End.String(),
		Notes:         b.Notes,
		Status:        string(b.Status),
		TransactionID: b.TransactionID,
		Amount:        b.Amount,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if b.PaymentMethod != nil {
		method := string(*b.PaymentMethod)
		resp.PaymentMethod = &method
	}

	return resp
}

// FromDomainBookings конвертирует список бронирований
func FromDomainBookings(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{Bookings: make([]BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// FromDomainDraft конвертирует черновик бронирования
func FromDomainDraft(d *domain.BookingDraft) *BookingDraftResponse {
	if d == nil {
		return nil
	}

	return &BookingDraftResponse{
		UserID:     d.UserID,
		VendorID:   d.VendorID,
		VendorName: d.VendorName,
		Date:       d.Date.Format(domain.DateFormat),
		StartTime:  d.TimeSlot.Start.String(),
		EndTime:    d.TimeSlot.End.String(),
		Notes:      d.Notes,
		Amount:     d.Amount,
		Currency:   d.Currency,
	}
}

// ToDomainBookingStatus конвертирует строку в статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
