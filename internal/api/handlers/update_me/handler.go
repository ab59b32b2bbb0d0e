package update_me

import (
	"errors"
	"net/http"

	"github.com/m04kA/WeddingMarketService/internal/api/handlers"
	"github.com/m04kA/WeddingMarketService/internal/api/middleware"
	"github.com/m04kA/WeddingMarketService/internal/service/accounts"
	"github.com/m04kA/WeddingMarketService/internal/service/accounts/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptyUpdate        = "не указано ни одного поля профиля"
	msgNotFound           = "пользователь не найден"
)

type Handler struct {
	service AccountService
	logger  Logger
}

func NewHandler(service AccountService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/auth/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.UpdateProfileRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /auth/me - Invalid request body: user_id=%d, error=%v", identity.UserID, err)
		if handlers.IsValidationError(err) {
			handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), identity.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrEmptyProfileUpdate):
			handlers.RespondBadRequest(w, msgEmptyUpdate)

		case errors.Is(err, accounts.ErrUserNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /auth/me - Failed to update profile: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /auth/me - Profile updated: user_id=%d", identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, user)
}
