package register

import (
	"errors"
	"net/http"

	"github.com/m04kA/WeddingMarketService/internal/api/handlers"
	"github.com/m04kA/WeddingMarketService/internal/service/accounts"
	"github.com/m04kA/WeddingMarketService/internal/service/accounts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmailTaken         = "email уже зарегистрирован"
	msgInvalidRole        = "роль недоступна для регистрации"
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

// Handle POST /api/v1/auth/register
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		if handlers.IsValidationError(err) {
			handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrEmailTaken):
			handlers.RespondError(w, http.StatusConflict, msgEmailTaken)

		case errors.Is(err, accounts.ErrInvalidRole):
			handlers.RespondBadRequest(w, msgInvalidRole)

		default:
			h.logger.Error("POST /auth/register - Failed to register: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/register - User registered: user_id=%d, role=%s", resp.User.ID, resp.User.Role)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
