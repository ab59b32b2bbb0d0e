package wishlist

import (
	"context"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// WishlistRepository хранилище избранного
type WishlistRepository interface {
	Add(ctx context.Context, userID, vendorID int64) error
	Remove(ctx context.Context, userID, vendorID int64) error
	Contains(ctx context.Context, userID, vendorID int64) (bool, error)
	List(ctx context.Context, userID int64) ([]int64, error)
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
