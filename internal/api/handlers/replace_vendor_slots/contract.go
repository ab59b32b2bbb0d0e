package replace_vendor_slots

import (
	"context"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/internal/service/vendors/models"
)

type VendorService interface {
	ReplaceSlots(ctx context.Context, vendorID int64, actor *domain.Identity, req *models.ReplaceSlotsRequest) (*models.SlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
