package user

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Upsert_KeepsIDAndSyncsSequence(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (id,email,password_hash,display_name,photo_url,role) VALUES ($1,$2,$3,$4,$5,$6) ON CONFLICT (id) DO UPDATE")).
		WithArgs(int64(42), "anna@wedding.local", "hash", "Anna", nil, "vendor").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(syncSequenceQuery)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &domain.User{
		ID:           42,
		Email:        " Anna@Wedding.local ",
		PasswordHash: "hash",
		DisplayName:  "Anna",
		Role:         domain.RoleVendor,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Upsert_EmailTaken(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Upsert(context.Background(), &domain.User{ID: 1, Email: "a@b.c", Role: domain.RoleUser})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRepository_GetByEmail_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("missing@wedding.local").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.GetByEmail(context.Background(), "Missing@Wedding.local")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_UpdateProfile(t *testing.T) {
	repo, mock := newMock(t)

	name, photo := "Anna K.", "https://cdn.wedding.local/anna.jpg"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET display_name = $1, photo_url = $2 WHERE id = $3")).
		WithArgs(name, photo, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateProfile(context.Background(), 42, &name, &photo)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateProfile_OnlyDisplayName(t *testing.T) {
	repo, mock := newMock(t)

	name := "Anna"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET display_name = $1 WHERE id = $2")).
		WithArgs(name, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateProfile(context.Background(), 42, &name, nil)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateProfile_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	name := "Ghost"
	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateProfile(context.Background(), 404, &name, nil)

	assert.ErrorIs(t, err, ErrUserNotFound)
}
