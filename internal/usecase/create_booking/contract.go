package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/internal/integrations/events"
	"github.com/m04kA/WeddingMarketService/internal/usecase/initiate_booking"
)

// Initiator подготовка черновика бронирования
type Initiator interface {
	Execute(ctx context.Context, req *initiate_booking.Request) (*initiate_booking.Response, error)
}

// PaymentGateway интерфейс платёжного шлюза
type PaymentGateway interface {
	Process(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentResult, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ReconciliationRepository журнал оплат без сохранённого бронирования
type ReconciliationRepository interface {
	Record(ctx context.Context, item *domain.PaymentInconsistency) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics метрики оплаты
type Metrics interface {
	ObservePayment(method, result string)
	IncPaymentInconsistency()
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
