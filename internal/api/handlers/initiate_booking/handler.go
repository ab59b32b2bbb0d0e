package initiate_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/WeddingMarketService/internal/api/handlers"
	"github.com/m04kA/WeddingMarketService/internal/api/middleware"
	"github.com/m04kA/WeddingMarketService/internal/service/bookings/models"
	initiateBooking "github.com/m04kA/WeddingMarketService/internal/usecase/initiate_booking"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFormat      = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgVendorNotFound     = "вендор не найден"
	msgVendorNotAvailable = "вендор недоступен для бронирования"
	msgInvalidBookingDate = "дата бронирования в прошлом"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgNotesTooLong       = "заметки слишком длинные"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase InitiateBookingUseCase
	logger  Logger
}

func NewHandler(useCase InitiateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/draft
// Проверяет запрос и считает сумму, ничего не сохраняя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req DraftBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /bookings/draft - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(identity.UserID)
	if err != nil {
		h.logger.Warn("POST /bookings/draft - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		status, msg := MapError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("POST /bookings/draft - Failed to build draft: user_id=%d, vendor_id=%d, error=%v",
				identity.UserID, req.VendorID, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("POST /bookings/draft - Rejected: user_id=%d, vendor_id=%d, error=%v", identity.UserID, req.VendorID, err)
		handlers.RespondError(w, status, msg)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainDraft(result.Draft))
}

// MapError переводит ошибки черновика в HTTP статус и сообщение
// Используется и при создании бронирования, где черновик строится тем же use case
func MapError(err error) (int, string) {
	switch {
	case errors.Is(err, initiateBooking.ErrVendorNotFound):
		return http.StatusNotFound, msgVendorNotFound
	case errors.Is(err, initiateBooking.ErrVendorNotAvailable):
		return http.StatusNotFound, msgVendorNotAvailable
	case errors.Is(err, initiateBooking.ErrInvalidDate):
		return http.StatusBadRequest, msgInvalidBookingDate
	case errors.Is(err, initiateBooking.ErrDateTooFarInFuture):
		return http.StatusBadRequest, msgDateTooFar
	case errors.Is(err, initiateBooking.ErrInvalidTimeSlot):
		return http.StatusBadRequest, msgInvalidTimeSlot
	case errors.Is(err, initiateBooking.ErrTooLateToBook):
		return http.StatusBadRequest, msgTooLateToBook
	case errors.Is(err, initiateBooking.ErrNotesTooLong):
		return http.StatusBadRequest, msgNotesTooLong
	case errors.Is(err, initiateBooking.ErrInvalidInput):
		return http.StatusBadRequest, msgInvalidInput
	default:
		return http.StatusInternalServerError, ""
	}
}
