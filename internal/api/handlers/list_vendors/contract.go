package list_vendors

import (
	"context"

	"github.com/m04kA/WeddingMarketService/internal/service/vendors/models"
)

type VendorService interface {
	List(ctx context.Context, req *models.ListVendorsRequest) (*models.VendorListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
