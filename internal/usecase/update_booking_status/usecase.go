package update_booking_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	bookingRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/booking"
	vendorRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/vendor"
	"github.com/m04kA/WeddingMarketService/internal/integrations/events"
)

// UseCase use case смены статуса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	vendorRepo   VendorRepository
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	vendorRepo VendorRepository,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		vendorRepo:   vendorRepo,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case смены статуса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("UpdateBookingStatus: booking=%d, actor=%d, status=%s", req.BookingID, req.Actor.UserID, req.Status)

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBookingStatus: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBookingStatus: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Вендор нужен, чтобы понять, действует ли актор как владелец профиля
	vendor, err := uc.vendorRepo.GetByID(ctx, booking.VendorID)
	if err != nil && !errors.Is(err, vendorRepo.ErrVendorNotFound) {
		uc.logger.Error("UpdateBookingStatus: failed to get vendor id=%d: %v", booking.VendorID, err)
		return nil, fmt.Errorf("%w: failed to get vendor: %v", ErrInternal, err)
	}

	role, err := resolveActorRole(req.Actor, booking, vendor)
	if err != nil {
		uc.logger.Warn("UpdateBookingStatus: user=%d has no access to booking id=%d", req.Actor.UserID, booking.ID)
		return nil, err
	}

	// 4. Проверяем переход по таблице
	if !domain.CanTransition(booking.Status, role, req.Status) {
		uc.logger.Warn("UpdateBookingStatus: %s cannot move booking id=%d from %s to %s",
			role, booking.ID, booking.Status, req.Status)
		return nil, fmt.Errorf("%w: %s -> %s as %s", ErrInvalidTransition, booking.Status, req.Status, role)
	}

	// 5. Условная запись: статус меняется только если его не успели поменять
	from := booking.Status
	now := uc.timeProvider.Now()
	if err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, from, req.Status, now); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			uc.logger.Warn("UpdateBookingStatus: booking id=%d changed concurrently", booking.ID)
			return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		}
		uc.logger.Error("UpdateBookingStatus: failed to update booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	booking.Status = req.Status
	booking.UpdatedAt = now
	uc.metrics.IncBookingTransition(string(from), string(req.Status))

	uc.logger.Info("UpdateBookingStatus: booking id=%d moved %s -> %s by user=%d as %s",
		booking.ID, from, booking.Status, req.Actor.UserID, role)

	if err := uc.publisher.Publish(ctx, events.BookingStatusChanged(booking, from, req.Actor, now)); err != nil {
		uc.logger.Warn("UpdateBookingStatus: failed to publish event for booking id=%d: %v", booking.ID, err)
	}

	return &Response{Booking: booking}, nil
}
