package delete_review

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	reviewRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/review"
	vendorRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/vendor"
	"github.com/m04kA/WeddingMarketService/internal/integrations/events"
	"github.com/m04kA/WeddingMarketService/pkg/txmanager"
)

const retryBackoff = 10 * time.Millisecond

// backoff линейная пауза со случайной добавкой, чтобы повторы не сталкивались снова
func backoff(attempt int) time.Duration {
	return retryBackoff*time.Duration(attempt) + time.Duration(rand.Int63n(int64(retryBackoff)))
}

// UseCase use case удаления отзыва с обратным пересчётом рейтинга вендора
type UseCase struct {
	txManager    TransactionManager
	vendorRepo   VendorRepository
	reviewRepo   ReviewRepository
	publisher    EventPublisher
	metrics      Metrics
	maxRetries   int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	txManager TransactionManager,
	vendorRepo VendorRepository,
	reviewRepo ReviewRepository,
	publisher EventPublisher,
	metrics Metrics,
	maxRetries int,
	logger Logger,
) *UseCase {
	if maxRetries <= 0 {
		maxRetries = domain.DefaultAggregateRetries
	}

	return &UseCase{
		txManager:    txManager,
		vendorRepo:   vendorRepo,
		reviewRepo:   reviewRepo,
		publisher:    publisher,
		metrics:      metrics,
		maxRetries:   maxRetries,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case удаления отзыва
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("DeleteReview: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("DeleteReview: review=%d, vendor=%d, actor=%d", req.ReviewID, req.VendorID, req.Actor.UserID)

	// 2. Удаление и пересчёт агрегата одной транзакцией, конфликт повторяем
	var (
		deleted *domain.Review
		agg     domain.RatingAggregate
	)

	for attempt := 1; ; attempt++ {
		var err error
		deleted, agg, err = uc.deleteOnce(ctx, req)
		if err == nil {
			break
		}

		if !errors.Is(err, txmanager.ErrSerializationFailure) {
			return nil, err
		}

		uc.metrics.IncAggregateConflict("delete")
		if attempt >= uc.maxRetries {
			uc.logger.Error("DeleteReview: vendor=%d aggregate conflict after %d attempts", req.VendorID, attempt)
			return nil, ErrAggregateConflict
		}

		uc.logger.Warn("DeleteReview: vendor=%d aggregate conflict, attempt %d/%d", req.VendorID, attempt, uc.maxRetries)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrAggregateConflict, ctx.Err())
		case <-time.After(backoff(attempt)):
		}
	}

	uc.logger.Info("DeleteReview: review id=%d deleted, vendor=%d rating=%.2f count=%d",
		deleted.ID, deleted.VendorID, agg.Rating, agg.Count)

	if err := uc.publisher.Publish(ctx, events.ReviewDeleted(deleted, agg, uc.timeProvider.Now())); err != nil {
		uc.logger.Warn("DeleteReview: failed to publish event for review id=%d: %v", deleted.ID, err)
	}

	return &Response{Aggregate: agg}, nil
}

// deleteOnce одна попытка атомарного удаления отзыва и пересчёта агрегата
func (uc *UseCase) deleteOnce(ctx context.Context, req *Request) (*domain.Review, domain.RatingAggregate, error) {
	var (
		review *domain.Review
		agg    domain.RatingAggregate
	)

	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		review, err = uc.reviewRepo.GetByID(ctx, req.ReviewID)
		if err != nil {
			if errors.Is(err, reviewRepo.ErrReviewNotFound) {
				return ErrReviewNotFound
			}
			return err
		}

		if review.VendorID != req.VendorID {
			return ErrReviewNotFound
		}

		if review.UserID != req.Actor.UserID && !req.Actor.IsAdmin() {
			return ErrAccessDenied
		}

		vendor, err := uc.vendorRepo.GetForUpdate(ctx, review.VendorID)
		if err != nil {
			if errors.Is(err, vendorRepo.ErrVendorNotFound) {
				return ErrVendorNotFound
			}
			return err
		}

		if err := uc.reviewRepo.Delete(ctx, review.ID, vendor.ID); err != nil {
			if errors.Is(err, reviewRepo.ErrReviewNotFound) {
				return ErrReviewNotFound
			}
			return err
		}

		agg = vendor.Aggregate().WithRemoved(review.Rating)
		return uc.vendorRepo.UpdateAggregate(ctx, vendor.ID, agg, uc.timeProvider.Now())
	})
	if err == nil {
		return review, agg, nil
	}

	switch {
	case errors.Is(err, ErrReviewNotFound), errors.Is(err, ErrVendorNotFound):
		uc.logger.Warn("DeleteReview: review=%d vendor=%d: %v", req.ReviewID, req.VendorID, err)
		return nil, domain.RatingAggregate{}, err
	case errors.Is(err, ErrAccessDenied):
		uc.logger.Warn("DeleteReview: user=%d is not allowed to delete review=%d", req.Actor.UserID, req.ReviewID)
		return nil, domain.RatingAggregate{}, err
	case errors.Is(err, txmanager.ErrSerializationFailure):
		return nil, domain.RatingAggregate{}, err
	default:
		uc.logger.Error("DeleteReview: failed to delete review=%d: %v", req.ReviewID, err)
		return nil, domain.RatingAggregate{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
