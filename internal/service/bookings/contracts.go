package bookings

import (
	"context"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// VendorRepository интерфейс репозитория вендоров
type VendorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
