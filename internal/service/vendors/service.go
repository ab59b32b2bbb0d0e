package vendors

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	vendorRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/vendor"
	"github.com/m04kA/WeddingMarketService/internal/service/vendors/models"
)

const maxListLimit = 100

// Service сервис каталога вендоров
type Service struct {
	vendorRepo VendorRepository
	slotsRepo  SlotsRepository
	txManager  TransactionManager
	group      singleflight.Group
	logger     Logger
}

// NewService создает новый экземпляр сервиса вендоров
func NewService(
	vendorRepo VendorRepository,
	slotsRepo SlotsRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		vendorRepo: vendorRepo,
		slotsRepo:  slotsRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Create создает профиль вендора
// Доступно только пользователям с ролью vendor, один профиль на пользователя
func (s *Service) Create(ctx context.Context, actor *domain.Identity, req *models.CreateVendorRequest) (*models.VendorResponse, error) {
	s.logger.Info("Create: creating vendor profile for user=%d", actor.UserID)

	if actor.Role != domain.RoleVendor {
		s.logger.Warn("Create: user=%d with role=%s cannot create vendor profile", actor.UserID, actor.Role)
		return nil, ErrAccessDenied
	}

	if err := validatePriceRange(req.PriceRange); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.vendorRepo.Create(ctx, req.ToDomainVendor(actor.UserID))
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorExists) {
			s.logger.Warn("Create: user=%d already has a vendor profile", actor.UserID)
			return nil, ErrVendorAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created vendor id=%d", created.ID)
	return models.FromDomainVendor(created), nil
}

// GetByID получает вендора по ID
// Неодобренный профиль видят только владелец и администратор
func (s *Service) GetByID(ctx context.Context, id int64, actor *domain.Identity) (*models.VendorResponse, error) {
	vendor, err := s.getVendor(ctx, id)
	if err != nil {
		return nil, err
	}

	if !vendor.IsApproved && !vendor.IsOwnedBy(actor) && !actor.IsAdmin() {
		s.logger.Warn("GetByID: vendor id=%d is not approved", id)
		return nil, ErrVendorNotFound
	}

	return models.FromDomainVendor(vendor), nil
}

// GetMine получает профиль вендора текущего пользователя
func (s *Service) GetMine(ctx context.Context, actor *domain.Identity) (*models.VendorResponse, error) {
	vendor, err := s.vendorRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			return nil, ErrVendorNotFound
		}
		s.logger.Error("GetMine: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: GetMine - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainVendor(vendor), nil
}

// List возвращает одобренных вендоров по фильтру
func (s *Service) List(ctx context.Context, req *models.ListVendorsRequest) (*models.VendorListResponse, error) {
	if req.Limit > maxListLimit {
		req.Limit = maxListLimit
	}

	vendors, err := s.vendorRepo.ListApproved(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d vendors", len(vendors))
	return models.FromDomainVendors(vendors), nil
}

// ListForAdmin возвращает всех вендоров, включая ожидающих одобрения
// Доступно только администратору. req.Approved сужает выборку
func (s *Service) ListForAdmin(ctx context.Context, actor *domain.Identity, req *models.ListVendorsRequest) (*models.VendorListResponse, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("ListForAdmin: user=%d is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	if req.Limit > maxListLimit {
		req.Limit = maxListLimit
	}

	vendors, err := s.vendorRepo.ListAll(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("ListForAdmin: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListForAdmin - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForAdmin: found %d vendors", len(vendors))
	return models.FromDomainVendors(vendors), nil
}

// Update обновляет профиль вендора
// Доступно только владельцу. Рейтинг, отзывы и флаги не меняются
func (s *Service) Update(ctx context.Context, id int64, actor *domain.Identity, req *models.UpdateVendorRequest) (*models.VendorResponse, error) {
	s.logger.Info("Update: updating vendor id=%d by user=%d", id, actor.UserID)

	vendor, err := s.getVendor(ctx, id)
	if err != nil {
		return nil, err
	}

	if !vendor.IsOwnedBy(actor) {
		s.logger.Warn("Update: user=%d does not own vendor=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	req.ApplyTo(vendor)
	if err := validatePriceRange(models.PriceRange{Min: vendor.PriceRange.Min, Max: vendor.PriceRange.Max}); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}
	if vendor.Name == "" || vendor.Category == "" {
		return nil, fmt.Errorf("%w: name and category are required", ErrInvalidInput)
	}
	vendor.UpdatedAt = time.Now()

	if err := s.vendorRepo.UpdateProfile(ctx, vendor); err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			return nil, ErrVendorNotFound
		}
		s.logger.Error("Update: repository error for vendor=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.group.Forget(groupKey(id))
	s.logger.Info("Update: successfully updated vendor id=%d", id)
	return models.FromDomainVendor(vendor), nil
}

// SetFlags одобряет или выделяет вендора
// Доступно только администратору
func (s *Service) SetFlags(ctx context.Context, id int64, actor *domain.Identity, req *models.SetFlagsRequest) (*models.VendorResponse, error) {
	s.logger.Info("SetFlags: vendor id=%d approved=%v featured=%v by user=%d",
		id, req.IsApproved, req.IsFeatured, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("SetFlags: user=%d is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	if req.IsApproved == nil && req.IsFeatured == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if err := s.vendorRepo.SetFlags(ctx, id, req.IsApproved, req.IsFeatured, time.Now()); err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			s.logger.Warn("SetFlags: vendor id=%d not found", id)
			return nil, ErrVendorNotFound
		}
		s.logger.Error("SetFlags: repository error for vendor=%d: %v", id, err)
		return nil, fmt.Errorf("%w: SetFlags - repository error: %v", ErrInternal, err)
	}

	s.group.Forget(groupKey(id))

	vendor, err := s.getVendor(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainVendor(vendor), nil
}

// GetSlots возвращает опубликованное расписание вендора
// Без своего расписания действует расписание по умолчанию
func (s *Service) GetSlots(ctx context.Context, vendorID int64) (*models.SlotsResponse, error) {
	if _, err := s.getVendor(ctx, vendorID); err != nil {
		return nil, err
	}

	slots, err := s.slotsRepo.GetByVendor(ctx, vendorID)
	if err != nil {
		s.logger.Error("GetSlots: repository error for vendor=%d: %v", vendorID, err)
		return nil, fmt.Errorf("%w: GetSlots - repository error: %v", ErrInternal, err)
	}
	if len(slots) == 0 {
		slots = domain.DefaultTimeSlots
	}

	return models.FromDomainSlots(vendorID, slots), nil
}

// ReplaceSlots заменяет расписание вендора
// Доступно только владельцу. Пустой список возвращает расписание по умолчанию
func (s *Service) ReplaceSlots(ctx context.Context, vendorID int64, actor *domain.Identity, req *models.ReplaceSlotsRequest) (*models.SlotsResponse, error) {
	s.logger.Info("ReplaceSlots: vendor id=%d, %d slots by user=%d", vendorID, len(req.Slots), actor.UserID)

	slots, err := req.ToDomainSlots()
	if err != nil {
		s.logger.Warn("ReplaceSlots: invalid slot: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	slots, err = normalizeSlots(slots)
	if err != nil {
		s.logger.Warn("ReplaceSlots: %v", err)
		return nil, err
	}

	vendor, err := s.getVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.IsOwnedBy(actor) {
		s.logger.Warn("ReplaceSlots: user=%d does not own vendor=%d", actor.UserID, vendorID)
		return nil, ErrAccessDenied
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.slotsRepo.Replace(ctx, vendorID, slots)
	})
	if err != nil {
		s.logger.Error("ReplaceSlots: repository error for vendor=%d: %v", vendorID, err)
		return nil, fmt.Errorf("%w: ReplaceSlots - repository error: %v", ErrInternal, err)
	}

	if len(slots) == 0 {
		slots = domain.DefaultTimeSlots
	}

	s.logger.Info("ReplaceSlots: successfully replaced slots for vendor id=%d", vendorID)
	return models.FromDomainSlots(vendorID, slots), nil
}

// getVendor читает вендора, одновременные запросы одного ID схлопываются
func (s *Service) getVendor(ctx context.Context, id int64) (*domain.Vendor, error) {
	// Общий вызов не должен отменяться вместе с запросом первого ожидающего
	sharedCtx := context.WithoutCancel(ctx)
	result, err, _ := s.group.Do(groupKey(id), func() (interface{}, error) {
		return s.vendorRepo.GetByID(sharedCtx, id)
	})
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			s.logger.Warn("getVendor: vendor id=%d not found", id)
			return nil, ErrVendorNotFound
		}
		s.logger.Error("getVendor: repository error for vendor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get vendor: %v", ErrInternal, err)
	}

	// Результат общий для всех ожидающих, отдаём копию
	vendor := *result.(*domain.Vendor)
	return &vendor, nil
}

func groupKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

func validatePriceRange(p models.PriceRange) error {
	if p.Min < 0 || p.Max < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if p.Max > 0 && p.Min > p.Max {
		return fmt.Errorf("%w: price min must not exceed max", ErrInvalidInput)
	}
	return nil
}

// normalizeSlots проверяет start < end и отсутствие пересечений, сортирует по началу
func normalizeSlots(slots []domain.TimeSlot) ([]domain.TimeSlot, error) {
	sorted := make([]domain.TimeSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.IsBefore(sorted[j].Start)
	})

	for i, slot := range sorted {
		if !slot.Start.IsBefore(slot.End) {
			return nil, fmt.Errorf("%w: %s-%s start must be before end", ErrInvalidTimeSlot, slot.Start, slot.End)
		}
		if i > 0 && sorted[i-1].Overlaps(slot) {
			return nil, fmt.Errorf("%w: %s-%s overlaps %s-%s",
				ErrInvalidTimeSlot, slot.Start, slot.End, sorted[i-1].Start, sorted[i-1].End)
		}
	}

	return sorted, nil
}
