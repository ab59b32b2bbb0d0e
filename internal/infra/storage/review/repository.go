package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/pkg/dbmetrics"
	"github.com/m04kA/WeddingMarketService/pkg/psqlbuilder"
)

var reviewColumns = []string{
	"id",
	"user_id",
	"vendor_id",
	"rating",
	"text",
	"user_display_name",
	"user_photo_url",
	"created_at",
}

// Repository репозиторий отзывов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет отзыв
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns(
			"user_id",
			"vendor_id",
			"rating",
			"text",
			"user_display_name",
			"user_photo_url",
			"created_at",
		).
		Values(
			review.UserID,
			review.VendorID,
			review.Rating,
			review.Text,
			review.UserDisplayName,
			review.UserPhotoURL,
			review.CreatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&review.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return review, nil
}

// GetByID получает отзыв по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	review, err := scanReview(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan review: %w", ErrScanRow, err)
	}

	return review, nil
}

// Delete удаляет отзыв вендора. Если строка не удалилась, отзыва уже нет
func (r *Repository) Delete(ctx context.Context, id, vendorID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reviews").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"vendor_id": vendorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// ListByVendor возвращает отзывы вендора, новые первыми
func (r *Repository) ListByVendor(ctx context.Context, vendorID int64) ([]*domain.Review, error) {
	return r.list(ctx, "ListByVendor", squirrel.Eq{"vendor_id": vendorID})
}

// ListByUser возвращает отзывы пользователя, новые первыми
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Review, error) {
	return r.list(ctx, "ListByUser", squirrel.Eq{"user_id": userID})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Eq) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan review: %w", ErrScanRow, op, err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %w", ErrScanRow, op, err)
	}

	return reviews, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var (
		review   domain.Review
		photoURL sql.NullString
	)

	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.VendorID,
		&review.Rating,
		&review.Text,
		&review.UserDisplayName,
		&photoURL,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if photoURL.Valid {
		review.UserPhotoURL = &photoURL.String
	}

	return &review, nil
}
