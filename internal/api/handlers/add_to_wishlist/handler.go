package add_to_wishlist

import (
	"errors"
	"net/http"

	"github.com/m04kA/WeddingMarketService/internal/api/handlers"
	"github.com/m04kA/WeddingMarketService/internal/api/middleware"
	"github.com/m04kA/WeddingMarketService/internal/service/wishlist"
)

const (
	msgUnauthorized    = "требуется авторизация"
	msgInvalidVendorID = "некорректный ID вендора"
	msgNotFound        = "вендор не найден"
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

// Handle POST /api/v1/wishlist/{vendorId}
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

	if err := h.service.Add(r.Context(), identity.UserID, vendorID); err != nil {
		if errors.Is(err, wishlist.ErrVendorNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("POST /wishlist/{id} - Failed to add: user_id=%d, vendor_id=%d, error=%v", identity.UserID, vendorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
