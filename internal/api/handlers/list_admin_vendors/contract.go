package list_admin_vendors

import (
	"context"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/internal/service/vendors/models"
)

type VendorService interface {
	ListForAdmin(ctx context.Context, actor *domain.Identity, req *models.ListVendorsRequest) (*models.VendorListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
