package delete_review

import "github.com/m04kA/WeddingMarketService/internal/domain"

// Request входные данные для удаления отзыва
type Request struct {
	VendorID int64
	ReviewID int64
	Actor    *domain.Identity
}

// Response агрегат вендора после удаления
type Response struct {
	Aggregate domain.RatingAggregate
}
