package initiate_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	vendorRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/vendor"
)

// UseCase use case подготовки бронирования: проверяет дату, слот и вендора
// Ничего не сохраняет, результат передаётся на оплату
type UseCase struct {
	vendorRepo   VendorRepository
	slotsRepo    SlotsRepository
	horizonDays  int
	currency     string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	vendorRepo VendorRepository,
	slotsRepo SlotsRepository,
	horizonDays int,
	currency string,
	logger Logger,
) *UseCase {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultBookingHorizonDays
	}
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	return &UseCase{
		vendorRepo:   vendorRepo,
		slotsRepo:    slotsRepo,
		horizonDays:  horizonDays,
		currency:     currency,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case подготовки бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("InitiateBooking: user=%d, vendor=%d, date=%s, slot=%s-%s",
		req.UserID, req.VendorID, req.Date.Format(domain.DateFormat), req.TimeSlot.Start, req.TimeSlot.End)

	// 1. Валидация входных данных (до любого I/O)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("InitiateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем окно бронирования
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, uc.horizonDays); err != nil {
		uc.logger.Warn("InitiateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем вендора
	vendor, err := uc.vendorRepo.GetByID(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			uc.logger.Warn("InitiateBooking: vendor id=%d not found", req.VendorID)
			return nil, ErrVendorNotFound
		}
		uc.logger.Error("InitiateBooking: failed to get vendor id=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: failed to get vendor: %v", ErrInternal, err)
	}

	if !vendor.IsApproved {
		uc.logger.Warn("InitiateBooking: vendor id=%d is not approved", req.VendorID)
		return nil, ErrVendorNotAvailable
	}

	// 4. Слот должен быть из расписания вендора
	published, err := uc.slotsRepo.GetByVendor(ctx, req.VendorID)
	if err != nil {
		uc.logger.Error("InitiateBooking: failed to get slots for vendor id=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}
	if len(published) == 0 {
		published = domain.DefaultTimeSlots
	}

	if err := validateSlot(req.TimeSlot, published); err != nil {
		uc.logger.Warn("InitiateBooking: %v", err)
		return nil, err
	}

	if err := validateSlotNotStarted(req.Date, req.TimeSlot, now); err != nil {
		uc.logger.Warn("InitiateBooking: %v", err)
		return nil, err
	}

	// 5. Сумма к оплате: минимальная цена вендора
	draft := &domain.BookingDraft{
		UserID:     req.UserID,
		VendorID:   vendor.ID,
		VendorName: vendor.Name,
		Date:       domain.DateOnly(req.Date),
		TimeSlot:   req.TimeSlot,
		Notes:      strings.TrimSpace(req.Notes),
		Amount:     vendor.PriceRange.Min,
		Currency:   uc.currency,
	}

	uc.logger.Info("InitiateBooking: draft ready for user=%d, vendor=%d, amount=%.2f %s",
		draft.UserID, draft.VendorID, draft.Amount, draft.Currency)

	return &Response{Draft: draft}, nil
}
