package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	userRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/user"
)

// InMemoryProvider провайдер с явным списком пользователей из конфигурации
// Создаётся при старте и живёт в единственном экземпляре, переданном зависимостям
type InMemoryProvider struct {
	adminEmail string
	cost       int
	log        Logger

	// store nil, пока не вызван Sync: тогда пользователи живут только в памяти
	store UserStore

	mu      sync.RWMutex
	byID    map[int64]*domain.User
	byEmail map[string]*domain.User
	nextID  int64
}

// NewInMemoryProvider создает провайдер и хеширует пароли заданных пользователей
func NewInMemoryProvider(users []MemoryUser, adminEmail string, log Logger) (*InMemoryProvider, error) {
	p := &InMemoryProvider{
		adminEmail: normalizeEmail(adminEmail),
		cost:       bcrypt.DefaultCost,
		log:        log,
		byID:       make(map[int64]*domain.User, len(users)),
		byEmail:    make(map[string]*domain.User, len(users)),
		nextID:     1,
	}

	for _, cu := range users {
		email := normalizeEmail(cu.Email)
		if _, exists := p.byEmail[email]; exists {
			return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
		}
		if _, exists := p.byID[cu.ID]; exists || cu.ID <= 0 {
			return nil, fmt.Errorf("%w: bad user id %d", ErrInternal, cu.ID)
		}

		role := cu.Role
		if email == p.adminEmail && p.adminEmail != "" {
			role = domain.RoleAdmin
		}
		if !role.IsValid() || role == domain.RoleGuest {
			return nil, fmt.Errorf("%w: %s for %s", ErrInvalidRole, role, email)
		}

		hash, err := hashPassword(cu.Password, p.cost)
		if err != nil {
			return nil, fmt.Errorf("%w: hash password: %v", ErrInternal, err)
		}

		u := &domain.User{
			ID:           cu.ID,
			Email:        email,
			PasswordHash: hash,
			DisplayName:  cu.DisplayName,
			Role:         role,
			CreatedAt:    time.Now(),
		}
		p.byID[u.ID] = u
		p.byEmail[email] = u
		if u.ID >= p.nextID {
			p.nextID = u.ID + 1
		}
	}

	return p, nil
}

// Sync записывает заданных пользователей в таблицу users с их ID и подключает store для Register.
// Без этого строки vendors, bookings и reviews не проходят внешний ключ на users
func (p *InMemoryProvider) Sync(ctx context.Context, store UserStore) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, u := range p.byID {
		if err := store.Upsert(ctx, u); err != nil {
			if errors.Is(err, userRepo.ErrEmailTaken) {
				return fmt.Errorf("%w: %s belongs to another user id", ErrEmailTaken, u.Email)
			}
			return fmt.Errorf("%w: Sync - upsert user id=%d: %v", ErrInternal, u.ID, err)
		}
	}

	p.store = store
	p.log.Info("InMemoryProvider: %d configured users synced to the users table", len(p.byID))
	return nil
}

// Authenticate проверяет email и пароль
func (p *InMemoryProvider) Authenticate(_ context.Context, email, password string) (*domain.Identity, error) {
	p.mu.RLock()
	u, ok := p.byEmail[normalizeEmail(email)]
	p.mu.RUnlock()

	if !ok || !checkPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u.Identity(), nil
}

// Lookup возвращает пользователя по ID
func (p *InMemoryProvider) Lookup(_ context.Context, userID int64) (*domain.Identity, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	u, ok := p.byID[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u.Identity(), nil
}

// Register добавляет пользователя в память процесса, а при подключённом store и в таблицу users.
// ID в этом случае выдаёт база
func (p *InMemoryProvider) Register(ctx context.Context, req RegisterRequest) (*domain.Identity, error) {
	email := normalizeEmail(req.Email)

	role, err := resolveRole(email, p.adminEmail, req.Role)
	if err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password, p.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.byEmail[email]; exists {
		return nil, ErrEmailTaken
	}

	u := &domain.User{
		ID:           p.nextID,
		Email:        email,
		PasswordHash: hash,
		DisplayName:  req.DisplayName,
		PhotoURL:     req.PhotoURL,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if p.store != nil {
		created, err := p.store.Create(ctx, u)
		if err != nil {
			if errors.Is(err, userRepo.ErrEmailTaken) {
				return nil, ErrEmailTaken
			}
			return nil, fmt.Errorf("%w: Register: %v", ErrInternal, err)
		}
		u = created
	}

	if u.ID >= p.nextID {
		p.nextID = u.ID + 1
	}
	p.byID[u.ID] = u
	p.byEmail[email] = u

	p.log.Info("InMemoryProvider: registered user id=%d role=%s", u.ID, u.Role)
	return u.Identity(), nil
}

// UpdateProfile меняет имя и фото. При подключённом store изменение сначала пишется в таблицу users
func (p *InMemoryProvider) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*domain.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current, ok := p.byID[userID]
	if !ok {
		return nil, ErrUserNotFound
	}

	updated := *current
	if upd.DisplayName != nil {
		updated.DisplayName = *upd.DisplayName
	}
	if upd.PhotoURL != nil {
		photoURL := *upd.PhotoURL
		updated.PhotoURL = &photoURL
	}

	if p.store != nil {
		if err := p.store.Upsert(ctx, &updated); err != nil {
			return nil, fmt.Errorf("%w: UpdateProfile - upsert user id=%d: %v", ErrInternal, userID, err)
		}
	}

	p.byID[userID] = &updated
	p.byEmail[updated.Email] = &updated

	return updated.Identity(), nil
}
