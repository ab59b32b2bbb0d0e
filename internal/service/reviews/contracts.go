package reviews

import (
	"context"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	ListByVendor(ctx context.Context, vendorID int64) ([]*domain.Review, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Review, error)
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
