package get_vendor_reviews

import (
	"context"

	"github.com/m04kA/WeddingMarketService/internal/service/reviews/models"
)

type ReviewService interface {
	ListByVendor(ctx context.Context, vendorID int64) (*models.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
