package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	vendorRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/vendor"
)

// UseCase use case для получения доступных слотов вендора на дату
type UseCase struct {
	vendorRepo   VendorRepository
	slotsRepo    SlotsRepository
	horizonDays  int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	vendorRepo VendorRepository,
	slotsRepo SlotsRepository,
	horizonDays int,
	logger Logger,
) *UseCase {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultBookingHorizonDays
	}

	return &UseCase{
		vendorRepo:   vendorRepo,
		slotsRepo:    slotsRepo,
		horizonDays:  horizonDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: vendor=%d, date=%s", req.VendorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем окно бронирования
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, uc.horizonDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем вендора
	vendor, err := uc.vendorRepo.GetByID(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			uc.logger.Warn("GetAvailableSlots: vendor id=%d not found", req.VendorID)
			return nil, ErrVendorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get vendor id=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: failed to get vendor: %v", ErrInternal, err)
	}

	if !vendor.IsApproved {
		uc.logger.Warn("GetAvailableSlots: vendor id=%d is not approved", req.VendorID)
		return nil, ErrVendorNotAvailable
	}

	// 4. Опубликованные слоты или расписание по умолчанию
	published, err := uc.slotsRepo.GetByVendor(ctx, vendor.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slots for vendor id=%d: %v", vendor.ID, err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}
	if len(published) == 0 {
		published = domain.DefaultTimeSlots
	}

	// 5. Убираем уже начавшиеся слоты
	slots := filterStarted(published, req.Date, now)

	uc.logger.Info("GetAvailableSlots: found %d slots for vendor=%d on %s",
		len(slots), vendor.ID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:     domain.DateOnly(req.Date),
		VendorID: vendor.ID,
		Slots:    slots,
	}, nil
}
