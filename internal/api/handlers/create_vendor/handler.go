package create_vendor

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPriceRange  = "минимальная цена больше максимальной"
	msgForbidden          = "создавать профиль могут только вендоры"
	msgAlreadyExists      = "профиль вендора уже создан"
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

// Handle POST /api/v1/vendors
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateVendorRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /vendors - Invalid request body: %v", err)
		if handlers.IsValidationError(err) {
			handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	vendor, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, vendors.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPriceRange)

		case errors.Is(err, vendors.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, vendors.ErrVendorAlreadyExists):
			handlers.RespondError(w, http.StatusConflict, msgAlreadyExists)

		default:
			h.logger.Error("POST /vendors - Failed to create vendor: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /vendors - Vendor created: vendor_id=%d, user_id=%d", vendor.ID, identity.UserID)
	handlers.RespondJSON(w, http.StatusCreated, vendor)
}
