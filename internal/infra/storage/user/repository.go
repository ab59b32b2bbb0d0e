package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/pkg/dbmetrics"
	"github.com/m04kA/WeddingMarketService/pkg/psqlbuilder"
	"github.com/m04kA/WeddingMarketService/pkg/txmanager"
)

var userColumns = []string{
	"id",
	"email",
	"password_hash",
	"display_name",
	"photo_url",
	"role",
	"created_at",
}

// Repository каталог пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует пользователя. Email хранится в нижнем регистре
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	query, args, err := psqlbuilder.Insert("users").
		Columns("email", "password_hash", "display_name", "photo_url", "role").
		Values(u.Email, u.PasswordHash, u.DisplayName, u.PhotoURL, u.Role).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt); err != nil {
		if txmanager.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return u, nil
}

// Upsert сохраняет пользователя с заданным ID и сдвигает последовательность id за максимальный.
// Используется провайдером "memory", чтобы внешние ключи vendors/bookings/reviews находили пользователя
func (r *Repository) Upsert(ctx context.Context, u *domain.User) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	query, args, err := psqlbuilder.Insert("users").
		Columns("id", "email", "password_hash", "display_name", "photo_url", "role").
		Values(u.ID, u.Email, u.PasswordHash, u.DisplayName, u.PhotoURL, u.Role).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"email = EXCLUDED.email, " +
			"password_hash = EXCLUDED.password_hash, " +
			"display_name = EXCLUDED.display_name, " +
			"photo_url = EXCLUDED.photo_url, " +
			"role = EXCLUDED.role").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if txmanager.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	if _, err := executor.ExecContext(ctx, syncSequenceQuery); err != nil {
		return fmt.Errorf("%w: Upsert - sync id sequence: %w", ErrExecQuery, err)
	}

	return nil
}

// UpdateProfile меняет имя и фото пользователя. nil поле не трогается
func (r *Repository) UpdateProfile(ctx context.Context, id int64, displayName, photoURL *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("users").Where(squirrel.Eq{"id": id})
	if displayName != nil {
		builder = builder.Set("display_name", *displayName)
	}
	if photoURL != nil {
		builder = builder.Set("photo_url", *photoURL)
	}
	if displayName == nil && photoURL == nil {
		// нечего менять, только проверяем существование
		_, err := r.GetByID(ctx, id)
		return err
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

const syncSequenceQuery ="SELECT setval(pg_get_serial_sequence('users', 'id'), (SELECT MAX(id) FROM users))"

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByEmail получает пользователя по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Eq{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var (
		u        domain.User
		photoURL sql.NullString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.DisplayName,
		&photoURL,
		&u.Role,
		&u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %w", ErrScanRow, op, err)
	}

	if photoURL.Valid {
		u.PhotoURL = &photoURL.String
	}

	return &u, nil
}
