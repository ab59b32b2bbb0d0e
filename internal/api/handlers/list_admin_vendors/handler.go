package list_admin_vendors

import (
	"errors"
	"net/http"

	"github.com/m04kA/WeddingMarketService/internal/api/handlers"
	"github.com/m04kA/WeddingMarketService/internal/api/middleware"
	"github.com/m04kA/WeddingMarketService/internal/service/vendors"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgInvalidQuery = "некорректные параметры фильтра"
	msgForbidden    = "доступно только администратору"
)

type Handler struct {
	service VendorService
	logger  Logger
}

func NewHandler(service VendorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/vendors
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/vendors - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	resp, err := h.service.ListForAdmin(r.Context(), identity, req)
	if err != nil {
		if errors.Is(err, vendors.ErrAccessDenied) {
			h.logger.Warn("GET /admin/vendors - Access denied: user_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /admin/vendors - Failed to list vendors: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/vendors - Listed %d vendors for admin user_id=%d", len(resp.Vendors), identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
