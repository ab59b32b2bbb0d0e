package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/WeddingMarketService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/WeddingMarketService/internal/usecase/get_available_slots"
)

const (
	msgInvalidVendorID    = "некорректный ID вендора"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate           = "дата в прошлом"
	msgDateTooFar         = "дата слишком далеко в будущем"
	msgVendorNotFound     = "вендор не найден"
	msgVendorNotAvailable = "вендор недоступен для бронирования"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/vendors/{vendorId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID, err := handlers.PathInt64(r, "vendorId")
	if err != nil {
		h.logger.Warn("GET /vendors/{id}/available-slots - %v", err)
		handlers.RespondBadRequest(w, msgInvalidVendorID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(vendorID, dateStr)
	if err != nil {
		h.logger.Warn("GET /vendors/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrVendorNotFound):
			handlers.RespondNotFound(w, msgVendorNotFound)

		case errors.Is(err, getAvailableSlots.ErrVendorNotAvailable):
			handlers.RespondNotFound(w, msgVendorNotAvailable)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidVendorID)

		default:
			h.logger.Error("GET /vendors/{id}/available-slots - Failed to get slots: vendor_id=%d, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /vendors/{id}/available-slots - Slots retrieved: vendor_id=%d, date=%s, slots_count=%d",
		vendorID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
