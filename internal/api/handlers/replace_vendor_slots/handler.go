package replace_vendor_slots

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
	msgInvalidTimeSlot    = "некорректный временной слот: ожидается HH:MM, начало раньше конца, без пересечений"
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

// Handle PUT /api/v1/vendors/{vendorId}/slots
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

	var req models.ReplaceSlotsRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /vendors/{id}/slots - Invalid request body: %v", err)
		if handlers.IsValidationError(err) {
			handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slots, err := h.service.ReplaceSlots(r.Context(), vendorID, identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, vendors.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, vendors.ErrVendorNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, vendors.ErrAccessDenied):
			h.logger.Warn("PUT /vendors/{id}/slots - Access denied: vendor_id=%d, user_id=%d", vendorID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /vendors/{id}/slots - Failed to replace slots: vendor_id=%d, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /vendors/{id}/slots - Slots replaced: vendor_id=%d, count=%d", vendorID, len(slots.Slots))
	handlers.RespondJSON(w, http.StatusOK, slots)
}
