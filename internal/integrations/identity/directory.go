package identity

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	userRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/user"
)

// DirectoryProvider провайдер идентификации поверх таблицы users
type DirectoryProvider struct {
	repo       UserRepository
	adminEmail string
	cost       int
	log        Logger
}

// NewDirectoryProvider создает провайдер на каталоге пользователей
func NewDirectoryProvider(repo UserRepository, adminEmail string, log Logger) *DirectoryProvider {
	return &DirectoryProvider{
		repo:       repo,
		adminEmail: normalizeEmail(adminEmail),
		cost:       bcrypt.DefaultCost,
		log:        log,
	}
}

// Authenticate проверяет email и пароль
func (p *DirectoryProvider) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	u, err := p.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: Authenticate: %v", ErrInternal, err)
	}

	if !checkPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return u.Identity(), nil
}

// Lookup возвращает пользователя с актуальной ролью
func (p *DirectoryProvider) Lookup(ctx context.Context, userID int64) (*domain.Identity, error) {
	u, err := p.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: Lookup: %v", ErrInternal, err)
	}

	return u.Identity(), nil
}

// Register создает пользователя
func (p *DirectoryProvider) Register(ctx context.Context, req RegisterRequest) (*domain.Identity, error) {
	email := normalizeEmail(req.Email)

	role, err := resolveRole(email, p.adminEmail, req.Role)
	if err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password, p.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	u, err := p.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  req.DisplayName,
		PhotoURL:     req.PhotoURL,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: Register: %v", ErrInternal, err)
	}

	p.log.Info("DirectoryProvider: registered user id=%d role=%s", u.ID, u.Role)
	return u.Identity(), nil
}

// UpdateProfile меняет имя и фото и возвращает пользователя после изменения
func (p *DirectoryProvider) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*domain.Identity, error) {
	if err := p.repo.UpdateProfile(ctx, userID, upd.DisplayName, upd.PhotoURL); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: UpdateProfile: %v", ErrInternal, err)
	}

	return p.Lookup(ctx, userID)
}
