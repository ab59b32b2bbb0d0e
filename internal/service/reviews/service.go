package reviews

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	vendorRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/vendor"
	"github.com/m04kA/WeddingMarketService/internal/service/reviews/models"
)

// Service сервис чтения отзывов
type Service struct {
	reviewRepo ReviewRepository
	vendorRepo VendorRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(reviewRepo ReviewRepository, vendorRepo VendorRepository, logger Logger) *Service {
	return &Service{
		reviewRepo: reviewRepo,
		vendorRepo: vendorRepo,
		logger:     logger,
	}
}

// ListByVendor отзывы вендора, новые первыми
func (s *Service) ListByVendor(ctx context.Context, vendorID int64) (*models.ReviewListResponse, error) {
	if _, err := s.vendorRepo.GetByID(ctx, vendorID); err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			s.logger.Warn("ListByVendor: vendor id=%d not found", vendorID)
			return nil, ErrVendorNotFound
		}
		s.logger.Error("ListByVendor: failed to get vendor id=%d: %v", vendorID, err)
		return nil, fmt.Errorf("%w: failed to get vendor: %v", ErrInternal, err)
	}

	reviews, err := s.reviewRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		s.logger.Error("ListByVendor: repository error for vendor=%d: %v", vendorID, err)
		return nil, fmt.Errorf("%w: ListByVendor - repository error: %v", ErrInternal, err)
	}

	sortNewestFirst(reviews)
	return models.FromDomainReviews(reviews), nil
}

// ListByUser отзывы пользователя, новые первыми
func (s *Service) ListByUser(ctx context.Context, userID int64) (*models.ReviewListResponse, error) {
	reviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	sortNewestFirst(reviews)
	return models.FromDomainReviews(reviews), nil
}

func sortNewestFirst(reviews []*domain.Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		if reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].ID > reviews[j].ID
		}
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
}
