package identity

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	userRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/user"
	"github.com/m04kA/WeddingMarketService/pkg/logger"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return nil, userRepo.ErrEmailTaken
		}
	}
	var maxID int64
	for id := range f.users {
		if id > maxID {
			maxID = id
		}
	}
	u.ID = maxID + 1
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) Upsert(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, existing := range f.users {
		if existing.Email == u.Email && id != u.ID {
			return userRepo.ErrEmailTaken
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id int64, displayName, photoURL *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	updated := *u
	if displayName != nil {
		updated.DisplayName = *displayName
	}
	if photoURL != nil {
		updated.PhotoURL = photoURL
	}
	f.users[id] = &updated
	return nil
}

type provider interface {
	Authenticate(ctx context.Context, email, password string) (*domain.Identity, error)
	Lookup(ctx context.Context, userID int64) (*domain.Identity, error)
	Register(ctx context.Context, req RegisterRequest) (*domain.Identity, error)
	UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*domain.Identity, error)
}

func providers(t *testing.T) map[string]provider {
	t.Helper()
	mem, err := NewInMemoryProvider(nil, "admin@example.com", logger.NewNop())
	require.NoError(t, err)

	return map[string]provider{
		"directory": NewDirectoryProvider(newFakeUserRepo(), "Admin@Example.com", logger.NewNop()),
		"memory":    mem,
	}
}

func TestProviders_RegisterAndAuthenticate(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			registered, err := p.Register(ctx, RegisterRequest{
				Email:       " Priya@Example.com",
				Password:    "secret-pass",
				DisplayName: "Priya",
			})
			require.NoError(t, err)
			assert.Equal(t, domain.RoleUser, registered.Role)
			assert.Equal(t, "priya@example.com", registered.Email)

			identity, err := p.Authenticate(ctx, "priya@example.com", "secret-pass")
			require.NoError(t, err)
			assert.Equal(t, registered.UserID, identity.UserID)

			_, err = p.Authenticate(ctx, "priya@example.com", "wrong")
			assert.ErrorIs(t, err, ErrInvalidCredentials)

			_, err = p.Authenticate(ctx, "nobody@example.com", "secret-pass")
			assert.ErrorIs(t, err, ErrInvalidCredentials)

			looked, err := p.Lookup(ctx, registered.UserID)
			require.NoError(t, err)
			assert.Equal(t, "Priya", looked.DisplayName)

			_, err = p.Lookup(ctx, 999)
			assert.ErrorIs(t, err, ErrUserNotFound)

			_, err = p.Register(ctx, RegisterRequest{Email: "priya@example.com", Password: "x"})
			assert.ErrorIs(t, err, ErrEmailTaken)
		})
	}
}

func TestProviders_Roles(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			vendor, err := p.Register(ctx, RegisterRequest{Email: "vendor@example.com", Password: "p", Role: domain.RoleVendor})
			require.NoError(t, err)
			assert.Equal(t, domain.RoleVendor, vendor.Role)

			_, err = p.Register(ctx, RegisterRequest{Email: "sneaky@example.com", Password: "p", Role: domain.RoleAdmin})
			assert.ErrorIs(t, err, ErrInvalidRole)

			admin, err := p.Register(ctx, RegisterRequest{Email: "admin@example.com", Password: "p"})
			require.NoError(t, err)
			assert.Equal(t, domain.RoleAdmin, admin.Role)
		})
	}
}

func TestNewInMemoryProvider_ConfiguredUsers(t *testing.T) {
	p, err := NewInMemoryProvider([]MemoryUser{
		{ID: 10, Email: "user@example.com", Password: "pass", DisplayName: "User", Role: domain.RoleUser},
		{ID: 11, Email: "admin@example.com", Password: "pass", DisplayName: "Admin", Role: domain.RoleUser},
	}, "admin@example.com", logger.NewNop())
	require.NoError(t, err)

	admin, err := p.Authenticate(context.Background(), "admin@example.com", "pass")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	registered, err := p.Register(context.Background(), RegisterRequest{Email: "new@example.com", Password: "pass"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), registered.UserID)
}

func TestNewInMemoryProvider_RejectsDuplicates(t *testing.T) {
	_, err := NewInMemoryProvider([]MemoryUser{
		{ID: 1, Email: "a@example.com", Password: "p", Role: domain.RoleUser},
		{ID: 2, Email: "A@example.com", Password: "p", Role: domain.RoleUser},
	}, "", logger.NewNop())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestInMemoryProvider_SyncWritesConfiguredUsers(t *testing.T) {
	p, err := NewInMemoryProvider([]MemoryUser{
		{ID: 10, Email: "user@example.com", Password: "pass", DisplayName: "User", Role: domain.RoleUser},
		{ID: 11, Email: "vendor@example.com", Password: "pass", DisplayName: "Vendor", Role: domain.RoleVendor},
	}, "", logger.NewNop())
	require.NoError(t, err)

	store := newFakeUserRepo()
	require.NoError(t, p.Sync(context.Background(), store))

	stored, err := store.GetByID(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "vendor@example.com", stored.Email)
	assert.Equal(t, domain.RoleVendor, stored.Role)
	assert.NotEmpty(t, stored.PasswordHash)

	_, err = store.GetByID(context.Background(), 10)
	assert.NoError(t, err)
}

func TestInMemoryProvider_RegisterAfterSyncPersistsUser(t *testing.T) {
	p, err := NewInMemoryProvider([]MemoryUser{
		{ID: 10, Email: "user@example.com", Password: "pass", DisplayName: "User", Role: domain.RoleUser},
	}, "", logger.NewNop())
	require.NoError(t, err)

	store := newFakeUserRepo()
	require.NoError(t, p.Sync(context.Background(), store))

	registered, err := p.Register(context.Background(), RegisterRequest{Email: "new@example.com", Password: "pass"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), registered.UserID)

	stored, err := store.GetByID(context.Background(), registered.UserID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", stored.Email)

	looked, err := p.Lookup(context.Background(), registered.UserID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", looked.Email)
}

func TestInMemoryProvider_SyncRejectsEmailOwnedByOtherRow(t *testing.T) {
	p, err := NewInMemoryProvider([]MemoryUser{
		{ID: 10, Email: "user@example.com", Password: "pass", Role: domain.RoleUser},
	}, "", logger.NewNop())
	require.NoError(t, err)

	store := newFakeUserRepo()
	_, err = store.Create(context.Background(), &domain.User{Email: "user@example.com"})
	require.NoError(t, err)

	err = p.Sync(context.Background(), store)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestProviders_UpdateProfile(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			registered, err := p.Register(ctx, RegisterRequest{
				Email:       "mila@example.com",
				Password:    "secret-pass",
				DisplayName: "Mila",
			})
			require.NoError(t, err)

			photo := "https://cdn.example.com/mila.jpg"
			updated, err := p.UpdateProfile(ctx, registered.UserID, ProfileUpdate{PhotoURL: &photo})
			require.NoError(t, err)
			assert.Equal(t, "Mila", updated.DisplayName)
			require.NotNil(t, updated.PhotoURL)
			assert.Equal(t, photo, *updated.PhotoURL)

			newName := "Mila S."
			_, err = p.UpdateProfile(ctx, registered.UserID, ProfileUpdate{DisplayName: &newName})
			require.NoError(t, err)

			looked, err := p.Lookup(ctx, registered.UserID)
			require.NoError(t, err)
			assert.Equal(t, "Mila S.", looked.DisplayName)
			require.NotNil(t, looked.PhotoURL)
			assert.Equal(t, photo, *looked.PhotoURL)

			authenticated, err := p.Authenticate(ctx, "mila@example.com", "secret-pass")
			require.NoError(t, err)
			assert.Equal(t, "Mila S.", authenticated.DisplayName)

			_, err = p.UpdateProfile(ctx, 404, ProfileUpdate{DisplayName: &newName})
			assert.ErrorIs(t, err, ErrUserNotFound)
		})
	}
}

func TestInMemoryProvider_UpdateProfileWritesThroughStore(t *testing.T) {
	p, err := NewInMemoryProvider([]MemoryUser{
		{ID: 10, Email: "user@example.com", Password: "pass", DisplayName: "User", Role: domain.RoleUser},
	}, "", logger.NewNop())
	require.NoError(t, err)

	store := newFakeUserRepo()
	require.NoError(t, p.Sync(context.Background(), store))

	name := "Renamed"
	_, err = p.UpdateProfile(context.Background(), 10, ProfileUpdate{DisplayName: &name})
	require.NoError(t, err)

	stored, err := store.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.DisplayName)
	assert.Equal(t, "user@example.com", stored.Email)
}
