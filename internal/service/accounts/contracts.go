package accounts

import (
	"context"
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/internal/integrations/identity"
)

// IdentityProvider провайдер учётных записей
type IdentityProvider interface {
	Authenticate(ctx context.Context, email, password string) (*domain.Identity, error)
	Lookup(ctx context.Context, userID int64) (*domain.Identity, error)
	Register(ctx context.Context, req identity.RegisterRequest) (*domain.Identity, error)
	UpdateProfile(ctx context.Context, userID int64, upd identity.ProfileUpdate) (*domain.Identity, error)
}

// TokenIssuer выпускает access токены
type TokenIssuer interface {
	GenerateToken(userID int64) (string, time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
