package add_review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"math/rand"
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	vendorRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/vendor"
	"github.com/m04kA/WeddingMarketService/internal/integrations/events"
	"github.com/m04kA/WeddingMarketService/pkg/txmanager"
)

const retryBackoff = 10 * time.Millisecond

// backoff линейная пауза со случайной добавкой, чтобы повторы не сталкивались снова
func backoff(attempt int) time.Duration {
	return retryBackoff*time.Duration(attempt) + time.Duration(rand.Int63n(int64(retryBackoff)))
}

// UseCase use case добавления отзыва с пересчётом рейтинга вендора
type UseCase struct {
	txManager               TransactionManager
	vendorRepo              VendorRepository
	reviewRepo              ReviewRepository
	bookingRepo             BookingRepository
	publisher               EventPublisher
	metrics                 Metrics
	maxRetries              int
	requireCompletedBooking bool
	timeProvider            TimeProvider
	logger                  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	txManager TransactionManager,
	vendorRepo VendorRepository,
	reviewRepo ReviewRepository,
	bookingRepo BookingRepository,
	publisher EventPublisher,
	metrics Metrics,
	maxRetries int,
	requireCompletedBooking bool,
	logger Logger,
) *UseCase {
	if maxRetries <= 0 {
		maxRetries = domain.DefaultAggregateRetries
	}

	return &UseCase{
		txManager:               txManager,
		vendorRepo:              vendorRepo,
		reviewRepo:              reviewRepo,
		bookingRepo:             bookingRepo,
		publisher:               publisher,
		metrics:                 metrics,
		maxRetries:              maxRetries,
		requireCompletedBooking: requireCompletedBooking,
		timeProvider:            &RealTimeProvider{},
		logger:                  logger,
	}
}

// Execute выполняет use case добавления отзыва
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных (до любого I/O)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AddReview: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("AddReview: user=%d, vendor=%d, rating=%d", req.Author.UserID, req.VendorID, req.Rating)

	// 2. Опционально требуем завершённое бронирование
	if uc.requireCompletedBooking {
		ok, err := uc.bookingRepo.HasCompletedBooking(ctx, req.Author.UserID, req.VendorID)
		if err != nil {
			uc.logger.Error("AddReview: failed to check bookings for user=%d: %v", req.Author.UserID, err)
			return nil, fmt.Errorf("%w: failed to check bookings: %v", ErrInternal, err)
		}
		if !ok {
			uc.logger.Warn("AddReview: user=%d has no completed booking with vendor=%d", req.Author.UserID, req.VendorID)
			return nil, ErrReviewNotAllowed
		}
	}

	// 3. Отзыв и агрегат пишутся одной транзакцией под блокировкой строки вендора, конфликт повторяем
	var (
		created *domain.Review
		agg     domain.RatingAggregate
	)

	for attempt := 1; ; attempt++ {
		var err error
		created, agg, err = uc.addOnce(ctx, req)
		if err == nil {
			break
		}

		if !errors.Is(err, txmanager.ErrSerializationFailure) {
			return nil, err
		}

		uc.metrics.IncAggregateConflict("add")
		if attempt >= uc.maxRetries {
			uc.logger.Error("AddReview: vendor=%d aggregate conflict after %d attempts", req.VendorID, attempt)
			return nil, ErrAggregateConflict
		}

		uc.logger.Warn("AddReview: vendor=%d aggregate conflict, attempt %d/%d", req.VendorID, attempt, uc.maxRetries)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrAggregateConflict, ctx.Err())
		case <-time.After(backoff(attempt)):
		}
	}

	uc.logger.Info("AddReview: review id=%d added, vendor=%d rating=%.2f count=%d",
		created.ID, created.VendorID, agg.Rating, agg.Count)

	if err := uc.publisher.Publish(ctx, events.ReviewAdded(created, agg, created.CreatedAt)); err != nil {
		uc.logger.Warn("AddReview: failed to publish event for review id=%d: %v", created.ID, err)
	}

	return &Response{Review: created, Aggregate: agg}, nil
}

// addOnce одна попытка атомарной записи отзыва и агрегата
func (uc *UseCase) addOnce(ctx context.Context, req *Request) (*domain.Review, domain.RatingAggregate, error) {
	var (
		created *domain.Review
		agg     domain.RatingAggregate
	)

	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		vendor, err := uc.vendorRepo.GetForUpdate(ctx, req.VendorID)
		if err != nil {
			if errors.Is(err, vendorRepo.ErrVendorNotFound) {
				return ErrVendorNotFound
			}
			return err
		}

		now := uc.timeProvider.Now()
		agg = vendor.Aggregate().WithAdded(req.Rating)

		created, err = uc.reviewRepo.Create(ctx, &domain.Review{
			UserID:          req.Author.UserID,
			VendorID:        vendor.ID,
			Rating:          req.Rating,
			Text:            strings.TrimSpace(req.Text),
			UserDisplayName: req.Author.DisplayName,
			UserPhotoURL:    req.Author.PhotoURL,
			CreatedAt:       now,
		})
		if err != nil {
			return err
		}

		return uc.vendorRepo.UpdateAggregate(ctx, vendor.ID, agg, now)
	})
	if err == nil {
		return created, agg, nil
	}

	switch {
	case errors.Is(err, ErrVendorNotFound):
		uc.logger.Warn("AddReview: vendor id=%d not found", req.VendorID)
		return nil, domain.RatingAggregate{}, ErrVendorNotFound
	case errors.Is(err, txmanager.ErrSerializationFailure):
		return nil, domain.RatingAggregate{}, err
	default:
		uc.logger.Error("AddReview: failed to save review for vendor=%d: %v", req.VendorID, err)
		return nil, domain.RatingAggregate{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
