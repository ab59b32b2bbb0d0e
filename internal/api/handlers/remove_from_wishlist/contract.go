package remove_from_wishlist

import "context"

type WishlistService interface {
	Remove(ctx context.Context, userID, vendorID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
