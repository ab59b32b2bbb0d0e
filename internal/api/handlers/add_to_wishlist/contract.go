package add_to_wishlist

import "context"

type WishlistService interface {
	Add(ctx context.Context, userID, vendorID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
