package identity

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// RegisterRequest данные регистрации
type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
	PhotoURL    *string
	Role        domain.Role
}

// ProfileUpdate изменяемые поля профиля. nil оставляет текущее значение
type ProfileUpdate struct {
	DisplayName *string
	PhotoURL    *string
}

// MemoryUser пользователь, заданный в конфигурации провайдера "memory"
type MemoryUser struct {
	ID          int64
	Email       string
	Password    string
	DisplayName string
	Role        domain.Role
}

// UserRepository каталог пользователей
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, displayName, photoURL *string) error
}

// UserStore таблица users, в которую провайдер "memory" зеркалирует своих пользователей
type UserStore interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Upsert(ctx context.Context, u *domain.User) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// resolveRole выдаёт admin только для настроенного email
// Остальные получают запрошенную роль user или vendor
func resolveRole(email, adminEmail string, requested domain.Role) (domain.Role, error) {
	if adminEmail != "" && email == adminEmail {
		return domain.RoleAdmin, nil
	}

	switch requested {
	case "", domain.RoleUser:
		return domain.RoleUser, nil
	case domain.RoleVendor:
		return domain.RoleVendor, nil
	default:
		return "", ErrInvalidRole
	}
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
