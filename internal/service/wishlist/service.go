package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	vendorRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/vendor"
	vendorModels "github.com/m04kA/WeddingMarketService/internal/service/vendors/models"
	"github.com/m04kA/WeddingMarketService/internal/service/wishlist/models"
)

// Service сервис избранного
type Service struct {
	wishlistRepo WishlistRepository
	vendorRepo   VendorRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса избранного
func NewService(wishlistRepo WishlistRepository, vendorRepo VendorRepository, logger Logger) *Service {
	return &Service{
		wishlistRepo: wishlistRepo,
		vendorRepo:   vendorRepo,
		logger:       logger,
	}
}

// Add добавляет одобренного вендора в избранное. Повторное добавление не ошибка
func (s *Service) Add(ctx context.Context, userID, vendorID int64) error {
	vendor, err := s.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			s.logger.Warn("Add: vendor id=%d not found", vendorID)
			return ErrVendorNotFound
		}
		s.logger.Error("Add: failed to get vendor id=%d: %v", vendorID, err)
		return fmt.Errorf("%w: failed to get vendor: %v", ErrInternal, err)
	}
	if !vendor.IsApproved {
		s.logger.Warn("Add: vendor id=%d is not approved", vendorID)
		return ErrVendorNotFound
	}

	if err := s.wishlistRepo.Add(ctx, userID, vendorID); err != nil {
		s.logger.Error("Add: repository error for user=%d: %v", userID, err)
		return fmt.Errorf("%w: Add - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Add: vendor=%d added to wishlist of user=%d", vendorID, userID)
	return nil
}

// Remove удаляет вендора из избранного. Отсутствие записи не ошибка
func (s *Service) Remove(ctx context.Context, userID, vendorID int64) error {
	if err := s.wishlistRepo.Remove(ctx, userID, vendorID); err != nil {
		s.logger.Error("Remove: repository error for user=%d: %v", userID, err)
		return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Remove: vendor=%d removed from wishlist of user=%d", vendorID, userID)
	return nil
}

// Contains проверяет, есть ли вендор в избранном
func (s *Service) Contains(ctx context.Context, userID, vendorID int64) (*models.ContainsResponse, error) {
	ok, err := s.wishlistRepo.Contains(ctx, userID, vendorID)
	if err != nil {
		s.logger.Error("Contains: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Contains - repository error: %v", ErrInternal, err)
	}

	return &models.ContainsResponse{VendorID: vendorID, InWishlist: ok}, nil
}

// List возвращает избранных вендоров. Удалённые и скрытые вендоры пропускаются
func (s *Service) List(ctx context.Context, userID int64) (*models.WishlistResponse, error) {
	ids, err := s.wishlistRepo.List(ctx, userID)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	vendors := make([]*domain.Vendor, 0, len(ids))
	for _, id := range ids {
		vendor, err := s.vendorRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, vendorRepo.ErrVendorNotFound) {
				s.logger.Warn("List: vendor id=%d from wishlist of user=%d not found, skipping", id, userID)
				continue
			}
			s.logger.Error("List: failed to get vendor id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: failed to get vendor: %v", ErrInternal, err)
		}
		if !vendor.IsApproved {
			continue
		}
		vendors = append(vendors, vendor)
	}

	return &models.WishlistResponse{Vendors: vendorModels.FromDomainVendors(vendors).Vendors}, nil
}
