package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	bookingRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/booking"
	vendorRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/vendor"
	"github.com/m04kA/WeddingMarketService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	vendorRepo  VendorRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	vendorRepo VendorRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		vendorRepo:  vendorRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Видят автор бронирования, владелец профиля вендора и администратор
func (s *Service) GetByID(ctx context.Context, id int64, actor *domain.Identity) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(ctx, booking, actor); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя, опционально по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	status, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{UserID: &req.UserID, Status: status})
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: found %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookings(bookings), nil
}

// GetVendorBookings получает бронирования вендора
// Доступно владельцу профиля и администратору
func (s *Service) GetVendorBookings(ctx context.Context, req *models.GetVendorBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetVendorBookings: fetching bookings for vendor=%d by user=%d, status=%v",
		req.VendorID, req.Actor.UserID, req.Status)

	status, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetVendorBookings: invalid status=%s", *req.Status)
		return nil, err
	}

	vendor, err := s.getVendor(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}

	if !vendor.IsOwnedBy(req.Actor) && !req.Actor.IsAdmin() {
		s.logger.Warn("GetVendorBookings: user=%d does not own vendor=%d", req.Actor.UserID, req.VendorID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{VendorID: &vendor.ID, Status: status})
	if err != nil {
		s.logger.Error("GetVendorBookings: repository error for vendor=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: GetVendorBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVendorBookings: found %d bookings for vendor=%d", len(bookings), req.VendorID)
	return models.FromDomainBookings(bookings), nil
}

// checkAccess проверяет права на просмотр бронирования
func (s *Service) checkAccess(ctx context.Context, booking *domain.Booking, actor *domain.Identity) error {
	if booking.UserID == actor.UserID || actor.IsAdmin() {
		return nil
	}

	vendor, err := s.getVendor(ctx, booking.VendorID)
	if err != nil {
		if errors.Is(err, ErrVendorNotFound) {
			return ErrAccessDenied
		}
		return err
	}

	if !vendor.IsOwnedBy(actor) {
		return ErrAccessDenied
	}

	return nil
}

func (s *Service) getVendor(ctx context.Context, id int64) (*domain.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			s.logger.Warn("getVendor: vendor id=%d not found", id)
			return nil, ErrVendorNotFound
		}
		s.logger.Error("getVendor: repository error for vendor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get vendor: %v", ErrInternal, err)
	}
	return vendor, nil
}

func parseStatus(raw *string) (*domain.BookingStatus, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	status, err := models.ToDomainBookingStatus(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &status, nil
}
