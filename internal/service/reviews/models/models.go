package models

import (
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// AddReviewRequest тело запроса на добавление отзыва
type AddReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"required"`
}

// ReviewResponse отзыв
type ReviewResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	VendorID        int64     `json:"vendorId"`
	Rating          int       `json:"rating"`
	Text            string    `json:"text"`
	UserDisplayName string    `json:"userDisplayName"`
	UserPhotoURL    *string   `json:"userPhotoUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ReviewListResponse список отзывов
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

// AggregateResponse рейтинг вендора после изменения
type AggregateResponse struct {
	VendorID    int64   `json:"vendorId"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
}

// AddReviewResponse ответ на добавление отзыва
type AddReviewResponse struct {
	Review ReviewResponse    `json:"review"`
	Vendor AggregateResponse `json:"vendor"`
}

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(r *domain.Review) *ReviewResponse {
	if r == nil {
		return nil
	}

	return &ReviewResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		VendorID:        r.VendorID,
		Rating:          r.Rating,
		Text:            r.Text,
		UserDisplayName: r.UserDisplayName,
		UserPhotoURL:    r.UserPhotoURL,
		CreatedAt:       r.CreatedAt,
	}
}

// FromDomainReviews конвертирует список отзывов
func FromDomainReviews(reviews []*domain.Review) *ReviewListResponse {
	resp := &ReviewListResponse{Reviews: make([]ReviewResponse, 0, len(reviews))}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, *FromDomainReview(r))
	}
	return resp
}

// FromAggregate конвертирует агрегат рейтинга
func FromAggregate(vendorID int64, agg domain.RatingAggregate) AggregateResponse {
	return AggregateResponse{VendorID: vendorID, Rating: agg.Rating, ReviewCount: agg.Count}
}
