package check_wishlist

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

// Handle GET /api/v1/wishlist/{vendorId}
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

	resp, err := h.service.Contains(r.Context(), identity.UserID, vendorID)
	if err != nil {
		h.logger.Error("GET /wishlist/{id} - Failed to check: user_id=%d, vendor_id=%d, error=%v", identity.UserID, vendorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
