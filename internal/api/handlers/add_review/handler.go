package add_review

import (
	"errors"
	"net/http"

	"github.com/m04kA/WeddingMarketService/internal/api/handlers"
	"github.com/m04kA/WeddingMarketService/internal/api/middleware"
	"github.com/m04kA/WeddingMarketService/internal/service/reviews/models"
	addReview "github.com/m04kA/WeddingMarketService/internal/usecase/add_review"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidVendorID    = "некорректный ID вендора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRating      = "оценка должна быть от 1 до 5"
	msgInvalidText        = "текст отзыва должен быть от 10 до 2000 символов"
	msgVendorNotFound     = "вендор не найден"
	msgReviewNotAllowed   = "отзыв можно оставить только после завершённого бронирования"
	msgAggregateConflict  = "рейтинг вендора сейчас обновляется, повторите запрос"
)

type Handler struct {
	useCase AddReviewUseCase
	logger  Logger
}

func NewHandler(useCase AddReviewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/vendors/{vendorId}/reviews
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

	// Диапазоны проверяет use case, здесь только разбор тела
	var req models.AddReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /vendors/{id}/reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &addReview.Request{
		VendorID: vendorID,
		Author:   identity,
		Rating:   req.Rating,
		Text:     req.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, addReview.ErrInvalidRating):
			handlers.RespondBadRequest(w, msgInvalidRating)

		case errors.Is(err, addReview.ErrInvalidText):
			handlers.RespondBadRequest(w, msgInvalidText)

		case errors.Is(err, addReview.ErrVendorNotFound):
			handlers.RespondNotFound(w, msgVendorNotFound)

		case errors.Is(err, addReview.ErrReviewNotAllowed):
			handlers.RespondForbidden(w, msgReviewNotAllowed)

		case errors.Is(err, addReview.ErrAggregateConflict):
			h.logger.Warn("POST /vendors/{id}/reviews - Aggregate conflict: vendor_id=%d", vendorID)
			w.Header().Set("Retry-After", "1")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgAggregateConflict)

		case errors.Is(err, addReview.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /vendors/{id}/reviews - Failed to add review: vendor_id=%d, user_id=%d, error=%v",
				vendorID, identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /vendors/{id}/reviews - Review added: review_id=%d, vendor_id=%d, rating=%.4f, count=%d",
		result.Review.ID, vendorID, result.Aggregate.Rating, result.Aggregate.Count)
	handlers.RespondJSON(w, http.StatusCreated, models.AddReviewResponse{
		Review: *models.FromDomainReview(result.Review),
		Vendor: models.FromAggregate(vendorID, result.Aggregate),
	})
}
