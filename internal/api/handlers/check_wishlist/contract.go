package check_wishlist

import (
	"context"

	"github.com/m04kA/WeddingMarketService/internal/service/wishlist/models"
)

type WishlistService interface {
	Contains(ctx context.Context, userID, vendorID int64) (*models.ContainsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
