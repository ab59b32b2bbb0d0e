package delete_review

import (
	"context"
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/internal/integrations/events"
)

// VendorRepository интерфейс репозитория вендоров
type VendorRepository interface {
	GetForUpdate(ctx context.Context, id int64) (*domain.Vendor, error)
	UpdateAggregate(ctx context.Context, id int64, agg domain.RatingAggregate, updatedAt time.Time) error
}

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Delete(ctx context.Context, id, vendorID int64) error
}

// TransactionManager интерфейс для управления транзакциями
// Do открывает READ COMMITTED, писателей одного вендора выстраивает SELECT ... FOR UPDATE
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics метрики конфликтов агрегата
type Metrics interface {
	IncAggregateConflict(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
