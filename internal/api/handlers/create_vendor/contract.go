package create_vendor

import (
	"context"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/internal/service/vendors/models"
)

type VendorService interface {
	Create(ctx context.Context, actor *domain.Identity, req *models.CreateVendorRequest) (*models.VendorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
