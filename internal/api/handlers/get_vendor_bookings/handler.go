package get_vendor_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/WeddingMarketService/internal/api/handlers"
	"github.com/m04kA/WeddingMarketService/internal/api/middleware"
	"github.com/m04kA/WeddingMarketService/internal/service/bookings"
	"github.com/m04kA/WeddingMarketService/internal/service/bookings/models"
)

const (
	msgUnauthorized    = "требуется авторизация"
	msgInvalidVendorID = "некорректный ID вендора"
	msgInvalidStatus   = "некорректный статус бронирования"
	msgNotFound        = "вендор не найден"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/vendors/{vendorId}/bookings
// Query params: status (optional)
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

	req := &models.GetVendorBookingsRequest{Actor: identity, VendorID: vendorID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	resp, err := h.service.GetVendorBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrVendorNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /vendors/{id}/bookings - Access denied: vendor_id=%d, user_id=%d", vendorID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /vendors/{id}/bookings - Failed to get bookings: vendor_id=%d, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
