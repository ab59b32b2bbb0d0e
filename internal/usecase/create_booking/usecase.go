package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/internal/integrations/events"
	"github.com/m04kA/WeddingMarketService/internal/usecase/initiate_booking"
	"github.com/m04kA/WeddingMarketService/pkg/ptr"
)

const (
	defaultPaymentTimeout = 10 * time.Second
	defaultPersistTimeout = 5 * time.Second
)

// UseCase use case создания бронирования: черновик, оплата, сохранение
type UseCase struct {
	initiator      Initiator
	gateway        PaymentGateway
	bookingRepo    BookingRepository
	reconciliation ReconciliationRepository
	publisher      EventPublisher
	metrics        Metrics
	paymentTimeout time.Duration
	persistTimeout time.Duration
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	initiator Initiator,
	gateway PaymentGateway,
	bookingRepo BookingRepository,
	reconciliation ReconciliationRepository,
	publisher EventPublisher,
	metrics Metrics,
	paymentTimeout time.Duration,
	logger Logger,
) *UseCase {
	if paymentTimeout <= 0 {
		paymentTimeout = defaultPaymentTimeout
	}

	return &UseCase{
		initiator:      initiator,
		gateway:        gateway,
		bookingRepo:    bookingRepo,
		reconciliation: reconciliation,
		publisher:      publisher,
		metrics:        metrics,
		paymentTimeout: paymentTimeout,
		persistTimeout: defaultPersistTimeout,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, vendor=%d, method=%s", req.UserID, req.VendorID, req.Payment.Method)

	// 1. Валидация способа оплаты
	if !req.Payment.Method.IsValid() {
		uc.logger.Warn("CreateBooking: invalid payment method %q", req.Payment.Method)
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.Payment.Method)
	}

	// 2. Черновик собирается на сервере, клиентской сумме не доверяем
	initiated, err := uc.initiator.Execute(ctx, &initiate_booking.Request{
		UserID:   req.UserID,
		VendorID: req.VendorID,
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, err
	}
	draft := initiated.Draft

	// 3. Оплата с ограничением по времени. Бронирования ещё нет
	result, err := uc.charge(ctx, draft, req.Payment)
	if err != nil {
		return nil, err
	}

	// 4. Сохраняем бронирование. Отмена запроса клиентом уже не должна прерывать запись
	now := uc.timeProvider.Now()
	booking := &domain.Booking{
		UserID:        draft.UserID,
		VendorID:      draft.VendorID,
		Date:          draft.Date,
		TimeSlot:      draft.TimeSlot,
		Notes:         draft.Notes,
		Status:        domain.StatusPending,
		TransactionID: ptr.Ptr(result.TransactionID),
		Amount:        ptr.Ptr(draft.Amount),
		PaymentMethod: ptr.Ptr(req.Payment.Method),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.persistTimeout)
	defer cancel()

	created, err := uc.bookingRepo.Create(persistCtx, booking)
	if err != nil {
		return nil, uc.reportInconsistency(ctx, draft, req.Payment.Method, result.TransactionID, err)
	}

	uc.logger.Info("CreateBooking: booking id=%d created for user=%d, vendor=%d, txn=%s",
		created.ID, created.UserID, created.VendorID, result.TransactionID)

	// 5. Событие публикуется после записи, ошибка публикации на результат не влияет
	if err := uc.publisher.Publish(persistCtx, events.BookingCreated(created, now)); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", created.ID, err)
	}

	return &Response{Booking: created}, nil
}

// charge вызывает шлюз. Любой исход кроме явного одобрения считается отказом
func (uc *UseCase) charge(ctx context.Context, draft *domain.BookingDraft, details domain.PaymentDetails) (*domain.PaymentResult, error) {
	payCtx, cancel := context.WithTimeout(ctx, uc.paymentTimeout)
	defer cancel()

	method := string(details.Method)

	result, err := uc.gateway.Process(payCtx, domain.PaymentRequest{
		Amount:      draft.Amount,
		Currency:    draft.Currency,
		Description: fmt.Sprintf("Booking for %s", draft.VendorName),
		Details:     details,
	})
	if err != nil {
		uc.metrics.ObservePayment(method, paymentError)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(payCtx.Err(), context.DeadlineExceeded) {
			uc.logger.Warn("CreateBooking: payment timed out after %s for user=%d", uc.paymentTimeout, draft.UserID)
			return nil, fmt.Errorf("%w: payment gateway timeout", ErrPaymentFailed)
		}
		uc.logger.Error("CreateBooking: payment gateway error for user=%d: %v", draft.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	if result == nil || !result.Success || result.TransactionID == "" {
		uc.metrics.ObservePayment(method, paymentDeclined)
		reason := "payment declined"
		if result != nil && result.Error != "" {
			reason = result.Error
		}
		uc.logger.Warn("CreateBooking: payment declined for user=%d: %s", draft.UserID, reason)
		return nil, fmt.Errorf("%w: %s", ErrPaymentFailed, reason)
	}

	uc.metrics.ObservePayment(method, paymentApproved)
	return result, nil
}

// reportInconsistency фиксирует списанную оплату без бронирования.
// Запись идёт в отдельном контексте: контекст сохранения бронирования к этому моменту мог истечь
func (uc *UseCase) reportInconsistency(
	ctx context.Context,
	draft *domain.BookingDraft,
	method domain.PaymentMethod,
	transactionID string,
	cause error,
) error {
	uc.metrics.IncPaymentInconsistency()
	uc.logger.Error("CreateBooking: INCONSISTENCY txn=%s user=%d vendor=%d amount=%.2f %s: booking not saved: %v",
		transactionID, draft.UserID, draft.VendorID, draft.Amount, draft.Currency, cause)

	item := &domain.PaymentInconsistency{
		TransactionID: transactionID,
		UserID:        draft.UserID,
		VendorID:      draft.VendorID,
		Amount:        draft.Amount,
		Currency:      draft.Currency,
		Method:        method,
		Error:         cause.Error(),
		CreatedAt:     uc.timeProvider.Now(),
	}
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.persistTimeout)
	defer cancel()

	if err := uc.reconciliation.Record(recordCtx, item); err != nil {
		uc.logger.Error("CreateBooking: failed to record inconsistency txn=%s: %v", transactionID, err)
	}

	return &InconsistencyError{TransactionID: transactionID, Cause: cause}
}
