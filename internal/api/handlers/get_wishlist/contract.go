package get_wishlist

import (
	"context"

	"github.com/m04kA/WeddingMarketService/internal/service/wishlist/models"
)

type WishlistService interface {
	List(ctx context.Context, userID int64) (*models.WishlistResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
