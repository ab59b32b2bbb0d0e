package remove_from_wishlist

import (
	"net/http"

	"github.com/m04kA/WeddingMarketService/internal/api/handlers"
	"github.com/m04kA/WeddingMarketService/internal/api/middleware"
)

const (
	msgUnauthorized    = "требуется авторизация"
	msgInvalidVendorID = "некорректный ID вендора"
)

type Handler struct {
	service WishlistService
	logger  Logger
}

func NewHandler(service WishlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/wishlist/{vendorId}
// Удаление отсутствующего вендора не ошибка
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

	if err := h.service.Remove(r.Context(), identity.UserID, vendorID); err != nil {
		h.logger.Error("DELETE /wishlist/{id} - Failed to remove: user_id=%d, vendor_id=%d, error=%v", identity.UserID, vendorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
