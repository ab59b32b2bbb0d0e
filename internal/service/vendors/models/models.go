package models

import (
	"strings"
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/pkg/types"
)

// Request модели

// ServiceItem услуга в профиле вендора
type ServiceItem struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// PriceRange диапазон цен
type PriceRange struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gte=0"`
}

// CreateVendorRequest запрос на создание профиля вендора
type CreateVendorRequest struct {
	Name          string        `json:"name" validate:"required,max=200"`
	Category      string        `json:"category" validate:"required,max=100"`
	Description   string        `json:"description" validate:"max=5000"`
	City          string        `json:"city" validate:"required,max=100"`
	Address       string        `json:"address" validate:"max=500"`
	PhoneNumber   string        `json:"phoneNumber" validate:"max=50"`
	Email         string        `json:"email" validate:"omitempty,email"`
	Website       string        `json:"website" validate:"omitempty,url"`
	PriceRange    PriceRange    `json:"priceRange"`
	CoverImage    string        `json:"coverImage" validate:"omitempty,url"`
	GalleryImages []string      `json:"galleryImages" validate:"max=30,dive,url"`
	Services      []ServiceItem `json:"services" validate:"max=50,dive"`
}

// UpdateVendorRequest частичное обновление профиля (nil - не менять)
type UpdateVendorRequest struct {
	Name          *string       `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Category      *string       `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Description   *string       `json:"description,omitempty" validate:"omitempty,max=5000"`
	City          *string       `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	Address       *string       `json:"address,omitempty" validate:"omitempty,max=500"`
	PhoneNumber   *string       `json:"phoneNumber,omitempty" validate:"omitempty,max=50"`
	Email         *string       `json:"email,omitempty" validate:"omitempty,email"`
	Website       *string       `json:"website,omitempty" validate:"omitempty,url"`
	PriceRange    *PriceRange   `json:"priceRange,omitempty"`
	CoverImage    *string       `json:"coverImage,omitempty" validate:"omitempty,url"`
	GalleryImages []string      `json:"galleryImages,omitempty" validate:"omitempty,max=30,dive,url"`
	Services      []ServiceItem `json:"services,omitempty" validate:"omitempty,max=50,dive"`
}

// SetFlagsRequest изменение флагов администратором
type SetFlagsRequest struct {
	IsApproved *bool `json:"isApproved,omitempty"`
	IsFeatured *bool `json:"isFeatured,omitempty"`
}

// ListVendorsRequest фильтр каталога
type ListVendorsRequest struct {
	Category     *string
	City         *string
	Search       *string
	FeaturedOnly bool
	// Approved учитывается только в админском списке
	Approved *bool
	Limit    uint64
	Offset   uint64
}

// TimeSlotItem опубликованный слот
type TimeSlotItem struct {
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// ReplaceSlotsRequest новое расписание вендора
type ReplaceSlotsRequest struct {
	Slots []TimeSlotItem `json:"slots" validate:"max=24,dive"`
}

// Response модели

// VendorResponse профиль вендора
type VendorResponse struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"userId"`
	Name          string        `json:"name"`
	Category      string        `json:"category"`
	Description   string        `json:"description"`
	City          string        `json:"city"`
	Address       string        `json:"address"`
	PhoneNumber   string        `json:"phoneNumber"`
	Email         string        `json:"email"`
	Website       string        `json:"website"`
	PriceRange    PriceRange    `json:"priceRange"`
	CoverImage    string        `json:"coverImage"`
	GalleryImages []string      `json:"galleryImages"`
	Services      []ServiceItem `json:"services"`
	Rating        float64       `json:"rating"`
	ReviewCount   int           `json:"reviewCount"`
	IsApproved    bool          `json:"isApproved"`
	IsFeatured    bool          `json:"isFeatured"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// VendorListResponse список вендоров
type VendorListResponse struct {
	Vendors []VendorResponse `json:"vendors"`
}

// SlotsResponse расписание вендора
type SlotsResponse struct {
	VendorID int64          `json:"vendorId"`
	Date     string         `json:"date,omitempty"`
	Slots    []TimeSlotItem `json:"slots"`
}

// Методы конвертации

// FromDomainVendor конвертирует domain модель в DTO
func FromDomainVendor(v *domain.Vendor) *VendorResponse {
	if v == nil {
		return nil
	}

	services := make([]ServiceItem, 0, len(v.Services))
	for _, s := range v.Services {
		services = append(services, ServiceItem{Name: s.Name, Description: s.Description, Price: s.Price})
	}

	gallery := make([]string, len(v.GalleryImages))
	copy(gallery, v.GalleryImages)

	return &VendorResponse{
		ID:            v.ID,
		UserID:        v.UserID,
		Name:          v.Name,
		Category:      v.Category,
		Description:   v.Description,
		City:          v.City,
		Address:       v.Address,
		PhoneNumber:   v.PhoneNumber,
		Email:         v.Email,
		Website:       v.Website,
		PriceRange:    PriceRange{Min: v.PriceRange.Min, Max: v.PriceRange.Max},
		CoverImage:    v.CoverImage,
		GalleryImages: gallery,
		Services:      services,
		Rating:        v.Rating,
		ReviewCount:   v.ReviewCount,
		IsApproved:    v.IsApproved,
		IsFeatured:    v.IsFeatured,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

// FromDomainVendors конвертирует список вендоров
func FromDomainVendors(vendors []*domain.Vendor) *VendorListResponse {
	resp := &VendorListResponse{Vendors: make([]VendorResponse, 0, len(vendors))}
	for _, v := range vendors {
		resp.Vendors = append(resp.Vendors, *FromDomainVendor(v))
	}
	return resp
}

// FromDomainSlots конвертирует расписание
func FromDomainSlots(vendorID int64, slots []domain.TimeSlot) *SlotsResponse {
	resp := &SlotsResponse{VendorID: vendorID, Slots: make([]TimeSlotItem, 0, len(slots))}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, TimeSlotItem{StartTime: s.Start.String(), EndTime: s.End.String()})
	}
	return resp
}

// ToDomainVendor собирает профиль из запроса на создание
func (r *CreateVendorRequest) ToDomainVendor(userID int64) *domain.Vendor {
	return &domain.Vendor{
		UserID:        userID,
		Name:          strings.TrimSpace(r.Name),
		Category:      strings.TrimSpace(r.Category),
		Description:   r.Description,
		City:          strings.TrimSpace(r.City),
		Address:       r.Address,
		PhoneNumber:   r.PhoneNumber,
		Email:         r.Email,
		Website:       r.Website,
		PriceRange:    domain.PriceRange{Min: r.PriceRange.Min, Max: r.PriceRange.Max},
		CoverImage:    r.CoverImage,
		GalleryImages: nonNilStrings(r.GalleryImages),
		Services:      toDomainServices(r.Services),
	}
}

// ApplyTo применяет частичное обновление к профилю
func (r *UpdateVendorRequest) ApplyTo(v *domain.Vendor) {
	if r.Name != nil {
		v.Name = strings.TrimSpace(*r.Name)
	}
	if r.Category != nil {
		v.Category = strings.TrimSpace(*r.Category)
	}
	if r.Description != nil {
		v.Description = *r.Description
	}
	if r.City != nil {
		v.City = strings.TrimSpace(*r.City)
	}
	if r.Address != nil {
		v.Address = *r.Address
	}
	if r.PhoneNumber != nil {
		v.PhoneNumber = *r.PhoneNumber
	}
	if r.Email != nil {
		v.Email = *r.Email
	}
	if r.Website != nil {
		v.Website = *r.Website
	}
	if r.PriceRange != nil {
		v.PriceRange = domain.PriceRange{Min: r.PriceRange.Min, Max: r.PriceRange.Max}
	}
	if r.CoverImage != nil {
		v.CoverImage = *r.CoverImage
	}
	if r.GalleryImages != nil {
		v.GalleryImages = nonNilStrings(r.GalleryImages)
	}
	if r.Services != nil {
		v.Services = toDomainServices(r.Services)
	}
}

// ToDomainSlots парсит расписание
func (r *ReplaceSlotsRequest) ToDomainSlots() ([]domain.TimeSlot, error) {
	slots := make([]domain.TimeSlot, 0, len(r.Slots))
	for _, item := range r.Slots {
		start, err := types.NewTimeStringFromString(item.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(item.EndTime)
		if err != nil {
			return nil, err
		}
		slots = append(slots, domain.TimeSlot{Start: start, End: end})
	}
	return slots, nil
}

// ToDomainFilter конвертирует запрос в фильтр каталога
func (r *ListVendorsRequest) ToDomainFilter() domain.VendorFilter {
	return domain.VendorFilter{
		Category:     r.Category,
		City:         r.City,
		Search:       r.Search,
		FeaturedOnly: r.FeaturedOnly,
		Approved:     r.Approved,
		Limit:        r.Limit,
		Offset:       r.Offset,
	}
}

func toDomainServices(items []ServiceItem) []domain.Service {
	services := make([]domain.Service, 0, len(items))
	for _, item := range items {
		services = append(services, domain.Service{
			Name:        strings.TrimSpace(item.Name),
			Description: item.Description,
			Price:       item.Price,
		})
	}
	return services
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
