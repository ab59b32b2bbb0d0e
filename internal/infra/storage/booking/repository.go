package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/pkg/dbmetrics"
	"github.com/m04kA/WeddingMarketService/pkg/psqlbuilder"
	"github.com/m04kA/WeddingMarketService/pkg/txmanager"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"vendor_id",
	"booking_date",
	"start_time",
	"end_time",
	"notes",
	"status",
	"transaction_id",
	"amount",
	"payment_method",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование и заполняет id и временные метки
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"vendor_id",
			"booking_date",
			"start_time",
			"end_time",
			"notes",
			"status",
			"transaction_id",
			"amount",
			"payment_method",
		).
		Values(
			booking.UserID,
			booking.VendorID,
			booking.Date,
			booking.TimeSlot.Start,
			booking.TimeSlot.End,
			booking.Notes,
			booking.Status,
			booking.TransactionID,
			booking.Amount,
			booking.PaymentMethod,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if txmanager.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %w", ErrDuplicateTransaction, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру, новые даты первыми
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("booking_date DESC", "start_time DESC", "id DESC")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.VendorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"vendor_id": *filter.VendorID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan booking: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus меняет статус только если текущий статус равен from
// Если строка не обновилась, статус успели поменять (или бронирования нет)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, updatedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrStatusChanged
	}

	return nil
}

// HasCompletedBooking проверяет, что у пользователя есть завершённое бронирование у вендора
func (r *Repository) HasCompletedBooking(ctx context.Context, userID, vendorID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{
			"user_id":   userID,
			"vendor_id": vendorID,
			"status":    domain.StatusCompleted,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasCompletedBooking - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasCompletedBooking - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking       domain.Booking
		transactionID sql.NullString
		amount        sql.NullFloat64
		paymentMethod sql.NullString
		createdAt     sql.NullTime
		updatedAt     sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.VendorID,
		&booking.Date,
		&booking.TimeSlot.Start,
		&booking.TimeSlot.End,
		&booking.Notes,
		&booking.Status,
		&transactionID,
		&amount,
		&paymentMethod,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if transactionID.Valid {
		booking.TransactionID = &transactionID.String
	}
	if amount.Valid {
		booking.Amount = &amount.Float64
	}
	if paymentMethod.Valid {
		method := domain.PaymentMethod(paymentMethod.String)
		booking.PaymentMethod = &method
	}
	booking.Date = booking.Date.UTC()
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
