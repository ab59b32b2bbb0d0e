package vendors

import (
	"context"
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// VendorRepository интерфейс репозитория вендоров
type VendorRepository interface {
	Create(ctx context.Context, v *domain.Vendor) (*domain.Vendor, error)
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Vendor, error)
	ListApproved(ctx context.Context, filter domain.VendorFilter) ([]*domain.Vendor, error)
	ListAll(ctx context.Context, filter domain.VendorFilter) ([]*domain.Vendor, error)
	UpdateProfile(ctx context.Context, v *domain.Vendor) error
	SetFlags(ctx context.Context, id int64, approved, featured *bool, updatedAt time.Time) error
}

// SlotsRepository интерфейс репозитория расписания
type SlotsRepository interface {
	GetByVendor(ctx context.Context, vendorID int64) ([]domain.TimeSlot, error)
	Replace(ctx context.Context, vendorID int64, slots []domain.TimeSlot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
