package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/WeddingMarketService/internal/api/handlers"
	"github.com/m04kA/WeddingMarketService/internal/domain"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный токен"
)

var errMalformedHeader = errors.New("authorization header is malformed")

type identityKey struct{}

// TokenValidator проверяет access токен и возвращает ID пользователя
type TokenValidator interface {
	ValidateAccessToken(token string) (int64, error)
}

// IdentityLookup получает актуальные данные пользователя
type IdentityLookup interface {
	Lookup(ctx context.Context, userID int64) (*domain.Identity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth резолвит Authorization: Bearer в domain.Identity
// Роль перечитывается у провайдера на каждый запрос, поэтому смена роли действует сразу
type Auth struct {
	tokens   TokenValidator
	identity IdentityLookup
	logger   Logger
}

// NewAuth создает middleware аутентификации
func NewAuth(tokens TokenValidator, identity IdentityLookup, logger Logger) *Auth {
	return &Auth{
		tokens:   tokens,
		identity: identity,
		logger:   logger,
	}
}

// Required пропускает только аутентифицированные запросы
func (a *Auth) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		identity, err := a.resolve(r.Context(), header)
		if err != nil {
			a.logger.Warn("%s %s - Unauthorized: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// Optional кладёт identity в контекст, если передан валидный токен
// Запрос без заголовка проходит как гость, с невалидным токеном отклоняется
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := a.resolve(r.Context(), header)
		if err != nil {
			a.logger.Warn("%s %s - Unauthorized: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func (a *Auth) resolve(ctx context.Context, header string) (*domain.Identity, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errMalformedHeader
	}

	userID, err := a.tokens.ValidateAccessToken(parts[1])
	if err != nil {
		return nil, err
	}

	return a.identity.Lookup(ctx, userID)
}

// WithIdentity кладёт identity в контекст
func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity возвращает identity из контекста
func GetIdentity(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*domain.Identity)
	return identity, ok && identity != nil
}
