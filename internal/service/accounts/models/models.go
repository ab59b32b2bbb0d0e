package models

import (
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// RegisterRequest тело запроса регистрации
type RegisterRequest struct {
	Email       string  `json:"email" validate:"required,email,max=254"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	DisplayName string  `json:"displayName" validate:"required,max=100"`
	PhotoURL    *string `json:"photoUrl,omitempty" validate:"omitempty,url"`
	Role        string  `json:"role,omitempty" validate:"omitempty,oneof=user vendor"`
}

// LoginRequest тело запроса входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest тело PATCH /auth/me. Отсутствующее поле не меняется
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty" validate:"omitempty,min=1,max=100"`
	PhotoURL    *string `json:"photoUrl,omitempty" validate:"omitempty,url"`
}

// UserResponse текущий пользователь
type UserResponse struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	DisplayName string  `json:"displayName"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
	Role        string  `json:"role"`
}

// TokenResponse выданный токен и пользователь
type TokenResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// FromIdentity конвертирует identity в DTO
func FromIdentity(i *domain.Identity) *UserResponse {
	if i == nil {
		return nil
	}

	return &UserResponse{
		ID:          i.UserID,
		Email:       i.Email,
		DisplayName: i.DisplayName,
		PhotoURL:    i.PhotoURL,
		Role:        string(i.Role),
	}
}
