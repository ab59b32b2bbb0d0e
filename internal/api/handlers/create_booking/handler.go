package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/WeddingMarketService/internal/api/handlers"
	initiateBookingHandler "github.com/m04kA/WeddingMarketService/internal/api/handlers/initiate_booking"
	"github.com/m04kA/WeddingMarketService/internal/api/middleware"
	"github.com/m04kA/WeddingMarketService/internal/service/bookings/models"
	createBooking "github.com/m04kA/WeddingMarketService/internal/usecase/create_booking"
)

const (
	msgUnauthorized         = "требуется авторизация"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidFormat        = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgInvalidPaymentMethod = "неподдерживаемый способ оплаты"
	msgPaymentFailed        = "оплата не прошла, бронирование не создано"
	msgInconsistency        = "оплата списана, но бронирование не сохранено; сохраните номер транзакции и обратитесь в поддержку"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Оплата проводится до сохранения: отклонённая оплата не создаёт бронирование
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(identity.UserID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var inconsistency *createBooking.InconsistencyError

		switch {
		case errors.As(err, &inconsistency):
			h.logger.Error("POST /bookings - Payment captured without booking: user_id=%d, vendor_id=%d, transaction_id=%s",
				identity.UserID, req.VendorID, inconsistency.TransactionID)
			handlers.RespondJSON(w, http.StatusInternalServerError, handlers.ErrorResponse{
				Error:         msgInconsistency,
				Status:        http.StatusInternalServerError,
				TransactionID: inconsistency.TransactionID,
			})

		case errors.Is(err, createBooking.ErrInvalidPaymentMethod):
			handlers.RespondBadRequest(w, msgInvalidPaymentMethod)

		case errors.Is(err, createBooking.ErrPaymentFailed):
			h.logger.Warn("POST /bookings - Payment failed: user_id=%d, vendor_id=%d, error=%v", identity.UserID, req.VendorID, err)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentFailed)

		default:
			status, msg := initiateBookingHandler.MapError(err)
			if status == http.StatusInternalServerError {
				h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, vendor_id=%d, error=%v",
					identity.UserID, req.VendorID, err)
				handlers.RespondInternalError(w)
				return
			}
			h.logger.Warn("POST /bookings - Rejected: user_id=%d, vendor_id=%d, error=%v", identity.UserID, req.VendorID, err)
			handlers.RespondError(w, status, msg)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, vendor_id=%d",
		result.Booking.ID, identity.UserID, req.VendorID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(result.Booking))
}
