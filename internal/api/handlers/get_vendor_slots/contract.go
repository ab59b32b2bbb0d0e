package get_vendor_slots

import (
	"context"

	"github.com/m04kA/WeddingMarketService/internal/service/vendors/models"
)

type VendorService interface {
	GetSlots(ctx context.Context, vendorID int64) (*models.SlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
