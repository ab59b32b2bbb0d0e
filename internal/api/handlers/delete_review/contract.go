package delete_review

import (
	"context"

	deleteReview "github.com/m04kA/WeddingMarketService/internal/usecase/delete_review"
)

type DeleteReviewUseCase interface {
	Execute(ctx context.Context, req *deleteReview.Request) (*deleteReview.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
