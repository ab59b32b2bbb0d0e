package reconciliation

import (
	"context"
	"fmt"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/pkg/psqlbuilder"
)

// Repository журнал оплат без сохранённого бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сверки
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Record записывает расхождение для ручной сверки
// Всегда пишет мимо транзакции из контекста: запись должна пережить её откат
func (r *Repository) Record(ctx context.Context, item *domain.PaymentInconsistency) error {
	query, args, err := psqlbuilder.Insert("payment_inconsistencies").
		Columns(
			"transaction_id",
			"user_id",
			"vendor_id",
			"amount",
			"currency",
			"method",
			"error",
		).
		Values(
			item.TransactionID,
			item.UserID,
			item.VendorID,
			item.Amount,
			item.Currency,
			item.Method,
			item.Error,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Record - build insert query: %v", ErrBuildQuery, err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&item.ID, &item.CreatedAt); err != nil {
		return fmt.Errorf("%w: Record - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
