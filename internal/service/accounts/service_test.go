package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WeddingMarketService/internal/auth"
	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/internal/integrations/identity"
	"github.com/m04kA/WeddingMarketService/internal/service/accounts/models"
	"github.com/m04kA/WeddingMarketService/pkg/logger"
	"github.com/m04kA/WeddingMarketService/pkg/ptr"
)

func newService(t *testing.T) (*Service, *auth.JWTAuthenticator) {
	t.Helper()
	provider, err := identity.NewInMemoryProvider([]identity.MemoryUser{
		{ID: 1, Email: "guest@example.com", Password: "password1", DisplayName: "Guest", Role: domain.RoleUser},
	}, "admin@example.com", logger.NewNop())
	require.NoError(t, err)

	tokens := auth.NewJWTAuthenticator("secret", "wedding-market", time.Hour)
	return NewService(provider, tokens, logger.NewNop()), tokens
}

func TestLogin(t *testing.T) {
	s, tokens := newService(t)

	resp, err := s.Login(context.Background(), &models.LoginRequest{Email: "guest@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "user", resp.User.Role)

	userID, err := tokens.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), userID)

	_, err = s.Login(context.Background(), &models.LoginRequest{Email: "guest@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister(t *testing.T) {
	s, _ := newService(t)

	resp, err := s.Register(context.Background(), &models.RegisterRequest{
		Email: "studio@example.com", Password: "password2", DisplayName: "Studio", Role: "vendor",
	})
	require.NoError(t, err)
	assert.Equal(t, "vendor", resp.User.Role)

	me, err := s.Me(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "studio@example.com", me.Email)

	_, err = s.Register(context.Background(), &models.RegisterRequest{
		Email: "studio@example.com", Password: "password2", DisplayName: "Studio",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.Register(context.Background(), &models.RegisterRequest{
		Email: "boss@example.com", Password: "password2", DisplayName: "Boss", Role: "admin",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)

	admin, err := s.Register(context.Background(), &models.RegisterRequest{
		Email: "admin@example.com", Password: "password3", DisplayName: "Admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.User.Role)

	_, err = s.Me(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	updated, err := s.UpdateProfile(ctx, 1, &models.UpdateProfileRequest{
		DisplayName: ptr.Ptr("  Guest Star "),
		PhotoURL:    ptr.Ptr("https://cdn.example.com/guest.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Guest Star", updated.DisplayName)
	require.NotNil(t, updated.PhotoURL)
	assert.Equal(t, "https://cdn.example.com/guest.png", *updated.PhotoURL)

	me, err := s.Me(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Guest Star", me.DisplayName)
	assert.Equal(t, "user", me.Role)

	_, err = s.UpdateProfile(ctx, 1, &models.UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrEmptyProfileUpdate)

	_, err = s.UpdateProfile(ctx, 1, &models.UpdateProfileRequest{DisplayName: ptr.Ptr("   ")})
	assert.ErrorIs(t, err, ErrEmptyProfileUpdate)

	_, err = s.UpdateProfile(ctx, 404, &models.UpdateProfileRequest{DisplayName: ptr.Ptr("Nobody")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
