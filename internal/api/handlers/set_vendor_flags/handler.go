package set_vendor_flags

import (
	"errors"
	"net/http"

	"github.com/m04kA/WeddingMarketService/internal/api/handlers"
	"github.com/m04kA/WeddingMarketService/internal/api/middleware"
	"github.com/m04kA/WeddingMarketService/internal/service/vendors"
	"github.com/m04kA/WeddingMarketService/internal/service/vendors/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidVendorID    = "некорректный ID вендора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNoFlags            = "не указан ни один флаг"
	msgNotFound           = "вендор не найден"
	msgForbidden          = "доступно только администратору"
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

// Handle PATCH /api/v1/admin/vendors/{vendorId}
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

	var req models.SetFlagsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/vendors/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	vendor, err := h.service.SetFlags(r.Context(), vendorID, identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, vendors.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgNoFlags)

		case errors.Is(err, vendors.ErrVendorNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, vendors.ErrAccessDenied):
			h.logger.Warn("PATCH /admin/vendors/{id} - Access denied: user_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /admin/vendors/{id} - Failed to set flags: vendor_id=%d, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/vendors/{id} - Flags updated: vendor_id=%d, approved=%t, featured=%t",
		vendorID, vendor.IsApproved, vendor.IsFeatured)
	handlers.RespondJSON(w, http.StatusOK, vendor)
}
