package domain

import (
	"strings"
	"time"
)

// PriceRange pricing range of a vendor
type PriceRange struct {
	Min float64
	Max float64
}

// Service услуга, которую вендор показывает в профиле
type Service struct {
	Name        string
	Description string
	Price       float64
}

// Vendor represents a fully-populated vendor profile.
// Rating and ReviewCount are owned by the rating aggregator and must not be written anywhere else.
type Vendor struct {
	ID            int64
	UserID        int64
	Name          string
	Category      string
	Description   string
	City          string
	Address       string
	PhoneNumber   string
	Email         string
	Website       string
	PriceRange    PriceRange
	CoverImage    string
	GalleryImages []string
	Services      []Service
	Rating        float64
	ReviewCount   int
	IsApproved    bool
	IsFeatured    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Aggregate returns the current rating aggregate of the vendor
func (v *Vendor) Aggregate() RatingAggregate {
	return RatingAggregate{Rating: v.Rating, Count: v.ReviewCount}
}

// IsOwnedBy returns true if the identity owns the vendor profile
func (v *Vendor) IsOwnedBy(identity *Identity) bool {
	return identity != nil && v.UserID == identity.UserID
}

// VendorRecord vendor as it comes from storage: optional columns are nil
type VendorRecord struct {
	ID            int64
	UserID        int64
	Name          *string
	Category      *string
	Description   *string
	City          *string
	Address       *string
	PhoneNumber   *string
	Email         *string
	Website       *string
	PriceMin      *float64
	PriceMax      *float64
	CoverImage    *string
	GalleryImages []string
	Services      []Service
	Rating        *float64
	ReviewCount   *int
	IsApproved    *bool
	IsFeatured    *bool
	CreatedAt     *time.Time
	UpdatedAt     *time.Time
}

// NormalizeVendor is the only place where missing vendor fields get their fallbacks.
// Consumers always work with the returned value and never re-check for absent data.
func NormalizeVendor(rec VendorRecord) *Vendor {
	v := &Vendor{
		ID:            rec.ID,
		UserID:        rec.UserID,
		Name:          strings.TrimSpace(stringOr(rec.Name, "")),
		Category:      strings.TrimSpace(stringOr(rec.Category, "")),
		Description:   stringOr(rec.Description, ""),
		City:          strings.TrimSpace(stringOr(rec.City, "")),
		Address:       stringOr(rec.Address, ""),
		PhoneNumber:   stringOr(rec.PhoneNumber, ""),
		Email:         stringOr(rec.Email, ""),
		Website:       stringOr(rec.Website, ""),
		CoverImage:    stringOr(rec.CoverImage, ""),
		GalleryImages: rec.GalleryImages,
		Services:      rec.Services,
		IsApproved:    rec.IsApproved != nil && *rec.IsApproved,
		IsFeatured:    rec.IsFeatured != nil && *rec.IsFeatured,
	}

	if v.GalleryImages == nil {
		v.GalleryImages = []string{}
	}
	if v.Services == nil {
		v.Services = []Service{}
	}

	if rec.PriceMin != nil && *rec.PriceMin > 0 {
		v.PriceRange.Min = *rec.PriceMin
	}
	if rec.PriceMax != nil && *rec.PriceMax > 0 {
		v.PriceRange.Max = *rec.PriceMax
	}
	if v.PriceRange.Max < v.PriceRange.Min {
		v.PriceRange.Max = v.PriceRange.Min
	}

	if rec.ReviewCount != nil && *rec.ReviewCount > 0 {
		v.ReviewCount = *rec.ReviewCount
		if rec.Rating != nil {
			v.Rating = *rec.Rating
		}
	}

	if rec.CreatedAt != nil {
		v.CreatedAt = *rec.CreatedAt
	}
	if rec.UpdatedAt != nil {
		v.UpdatedAt = *rec.UpdatedAt
	} else {
		v.UpdatedAt = v.CreatedAt
	}

	return v
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

// VendorFilter фильтр каталога вендоров
type VendorFilter struct {
	Category     *string
	City         *string
	Search       *string
	FeaturedOnly bool
	Approved     *bool
	Limit        uint64
	Offset       uint64
}
