package add_review

import "github.com/m04kA/WeddingMarketService/internal/domain"

// Request входные данные для добавления отзыва
type Request struct {
	VendorID int64
	Author   *domain.Identity
	Rating   int
	Text     string
}

// Response сохранённый отзыв и агрегат вендора после него
type Response struct {
	Review    *domain.Review
	Aggregate domain.RatingAggregate
}
