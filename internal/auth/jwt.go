package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken возвращается для невалидного, просроченного или чужого токена
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrSignToken возвращается при ошибке подписи токена
	ErrSignToken = errors.New("auth: failed to sign token")
)

// JWTAuthenticator выпускает и проверяет access токены (HS256, sub = id пользователя)
type JWTAuthenticator struct {
	secret []byte
	iss    string
	ttl    time.Duration
}

// NewJWTAuthenticator создает аутентификатор
func NewJWTAuthenticator(secret, iss string, ttl time.Duration) *JWTAuthenticator {
	return &JWTAuthenticator{
		secret: []byte(secret),
		iss:    iss,
		ttl:    ttl,
	}
}

// GenerateToken выпускает access токен для пользователя
func (a *JWTAuthenticator) GenerateToken(userID int64) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(a.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		Issuer:    a.iss,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrSignToken, err)
	}

	return token, expiresAt, nil
}

// ValidateAccessToken проверяет токен и возвращает id пользователя из sub
func (a *JWTAuthenticator) ValidateAccessToken(token string) (int64, error) {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(a.iss),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}

	return userID, nil
}
