package get_vendor

import (
	"errors"
	"net/http"

	"github.com/m04kA/WeddingMarketService/internal/api/handlers"
	"github.com/m04kA/WeddingMarketService/internal/api/middleware"
	"github.com/m04kA/WeddingMarketService/internal/service/vendors"
)

const (
	msgInvalidVendorID = "некорректный ID вендора"
	msgNotFound        = "вендор не найден"
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

// Handle GET /api/v1/vendors/{vendorId}
// Гость видит только одобренные профили
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID, err := handlers.PathInt64(r, "vendorId")
	if err != nil {
		h.logger.Warn("GET /vendors/{id} - %v", err)
		handlers.RespondBadRequest(w, msgInvalidVendorID)
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())

	vendor, err := h.service.GetByID(r.Context(), vendorID, identity)
	if err != nil {
		if errors.Is(err, vendors.ErrVendorNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /vendors/{id} - Failed to get vendor: vendor_id=%d, error=%v", vendorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, vendor)
}
