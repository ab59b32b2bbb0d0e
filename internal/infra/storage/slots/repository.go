package slots

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/pkg/dbmetrics"
	"github.com/m04kA/WeddingMarketService/pkg/psqlbuilder"
)

// Repository опубликованные временные слоты вендоров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByVendor возвращает слоты вендора по возрастанию времени начала
// Пустой результат означает, что вендор не публиковал собственное расписание
func (r *Repository) GetByVendor(ctx context.Context, vendorID int64) ([]domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time", "end_time").
		From("vendor_time_slots").
		Where(squirrel.Eq{"vendor_id": vendorID}).
		OrderBy("start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVendor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVendor - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.TimeSlot, 0)
	for rows.Next() {
		var slot domain.TimeSlot
		if err := rows.Scan(&slot.Start, &slot.End); err != nil {
			return nil, fmt.Errorf("%w: GetByVendor - scan slot: %w", ErrScanRow, err)
		}
		result = append(result, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByVendor - rows iteration: %w", ErrScanRow, err)
	}

	return result, nil
}

// Replace заменяет расписание вендора целиком
// Вызывать внутри транзакции, иначе между удалением и вставкой расписание будет пустым
func (r *Repository) Replace(ctx context.Context, vendorID int64, timeSlots []domain.TimeSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("vendor_time_slots").
		Where(squirrel.Eq{"vendor_id": vendorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Replace - execute delete: %w", ErrExecQuery, err)
	}

	if len(timeSlots) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("vendor_time_slots").
		Columns("vendor_id", "start_time", "end_time")
	for _, slot := range timeSlots {
		insertBuilder = insertBuilder.Values(vendorID, slot.Start, slot.End)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Replace - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
