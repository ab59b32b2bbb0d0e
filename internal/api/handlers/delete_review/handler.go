package delete_review

import (
	"errors"
	"net/http"

	"github.com/m04kA/WeddingMarketService/internal/api/handlers"
	"github.com/m04kA/WeddingMarketService/internal/api/middleware"
	"github.com/m04kA/WeddingMarketService/internal/service/reviews/models"
	deleteReview "github.com/m04kA/WeddingMarketService/internal/usecase/delete_review"
)

const (
	msgUnauthorized      = "требуется авторизация"
	msgInvalidVendorID   = "некорректный ID вендора"
	msgInvalidReviewID   = "некорректный ID отзыва"
	msgReviewNotFound    = "отзыв не найден"
	msgVendorNotFound    = "вендор не найден"
	msgForbidden         = "удалить отзыв может только автор или администратор"
	msgAggregateConflict = "рейтинг вендора сейчас обновляется, повторите запрос"
)

type Handler struct {
	useCase DeleteReviewUseCase
	logger  Logger
}

func NewHandler(useCase DeleteReviewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/vendors/{vendorId}/reviews/{reviewId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vendorID, err := handlers.PathInt64(r, "vendorId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidVendorID)
		return
	}
	reviewID, err := handlers.PathInt64(r, "reviewId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &deleteReview.Request{
		VendorID: vendorID,
		ReviewID: reviewID,
		Actor:    identity,
	})
	if err != nil {
		switch {
		case errors.Is(err, deleteReview.ErrReviewNotFound):
			handlers.RespondNotFound(w, msgReviewNotFound)

		case errors.Is(err, deleteReview.ErrVendorNotFound):
			handlers.RespondNotFound(w, msgVendorNotFound)

		case errors.Is(err, deleteReview.ErrAccessDenied):
			h.logger.Warn("DELETE /vendors/{id}/reviews/{id} - Access denied: review_id=%d, user_id=%d", reviewID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, deleteReview.ErrAggregateConflict):
			h.logger.Warn("DELETE /vendors/{id}/reviews/{id} - Aggregate conflict: vendor_id=%d", vendorID)
			w.Header().Set("Retry-After", "1")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgAggregateConflict)

		case errors.Is(err, deleteReview.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReviewID)

		default:
			h.logger.Error("DELETE /vendors/{id}/reviews/{id} - Failed to delete review: review_id=%d, error=%v", reviewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /vendors/{id}/reviews/{id} - Review deleted: review_id=%d, vendor_id=%d", reviewID, vendorID)
	handlers.RespondJSON(w, http.StatusOK, models.FromAggregate(vendorID, result.Aggregate))
}
