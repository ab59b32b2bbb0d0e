package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/internal/integrations/identity"
	"github.com/m04kA/WeddingMarketService/internal/service/accounts/models"
)

const tokenType = "Bearer"

// Service регистрация, вход и профиль текущего пользователя
type Service struct {
	provider IdentityProvider
	tokens   TokenIssuer
	logger   Logger
}

// NewService создает новый экземпляр сервиса учётных записей
func NewService(provider IdentityProvider, tokens TokenIssuer, logger Logger) *Service {
	return &Service{
		provider: provider,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register регистрирует пользователя и сразу выдаёт токен
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error) {
	s.logger.Info("Register: registering %s with role=%q", req.Email, req.Role)

	created, err := s.provider.Register(ctx, identity.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Role:        domain.Role(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrEmailTaken):
			s.logger.Warn("Register: email %s already registered", req.Email)
			return nil, ErrEmailTaken
		case errors.Is(err, identity.ErrInvalidRole):
			s.logger.Warn("Register: role %q is not allowed", req.Role)
			return nil, ErrInvalidRole
		default:
			s.logger.Error("Register: provider error: %v", err)
			return nil, fmt.Errorf("%w: Register - provider error: %v", ErrInternal, err)
		}
	}

	return s.issue(created)
}

// Login проверяет учётные данные и выдаёт токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	authenticated, err := s.provider.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			s.logger.Warn("Login: invalid credentials for %s", req.Email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: provider error: %v", err)
		return nil, fmt.Errorf("%w: Login - provider error: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user=%d logged in", authenticated.UserID)
	return s.issue(authenticated)
}

// Me возвращает актуальные данные пользователя
func (s *Service) Me(ctx context.Context, userID int64) (*models.UserResponse, error) {
	current, err := s.provider.Lookup(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Me: provider error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Me - provider error: %v", ErrInternal, err)
	}

	return models.FromIdentity(current), nil
}

// UpdateProfile меняет имя и фото текущего пользователя
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	upd := identity.ProfileUpdate{PhotoURL: req.PhotoURL}
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, ErrEmptyProfileUpdate
		}
		upd.DisplayName = &name
	}
	if upd.DisplayName == nil && upd.PhotoURL == nil {
		return nil, ErrEmptyProfileUpdate
	}

	updated, err := s.provider.UpdateProfile(ctx, userID, upd)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateProfile: provider error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - provider error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateProfile: user=%d profile updated", userID)
	return models.FromIdentity(updated), nil
}

func (s *Service) issue(i *domain.Identity) (*models.TokenResponse, error) {
	token, expiresAt, err := s.tokens.GenerateToken(i.UserID)
	if err != nil {
		s.logger.Error("issue: failed to generate token for user=%d: %v", i.UserID, err)
		return nil, fmt.Errorf("%w: failed to generate token: %v", ErrInternal, err)
	}

	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   tokenType,
		ExpiresAt:   expiresAt,
		User:        *models.FromIdentity(i),
	}, nil
}
