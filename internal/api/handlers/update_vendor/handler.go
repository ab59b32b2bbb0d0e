package update_vendor

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
	msgInvalidPriceRange  = "минимальная цена больше максимальной"
	msgNotFound           = "вендор не найден"
	msgForbidden          = "доступ запрещен"
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

// Handle PUT /api/v1/vendors/{vendorId}
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

	var req models.UpdateVendorRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /vendors/{id} - Invalid request body: %v", err)
		if handlers.IsValidationError(err) {
			handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	vendor, err := h.service.Update(r.Context(), vendorID, identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, vendors.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPriceRange)

		case errors.Is(err, vendors.ErrVendorNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, vendors.ErrAccessDenied):
			h.logger.Warn("PUT /vendors/{id} - Access denied: vendor_id=%d, user_id=%d", vendorID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /vendors/{id} - Failed to update vendor: vendor_id=%d, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, vendor)
}
