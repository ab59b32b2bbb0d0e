package payment

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// MockGateway эмулятор платёжного шлюза для стендов и разработки
// Проверяет реквизиты выбранного способа оплаты и одобряет долю successRate платежей
type MockGateway struct {
	successRate float64
	delay       time.Duration
	log         Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewMockGateway создает эмулятор шлюза
func NewMockGateway(successRate float64, delay time.Duration, log Logger) *MockGateway {
	return &MockGateway{
		successRate: successRate,
		delay:       delay,
		log:         log,
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Process проводит платёж. Отказ возвращается в результате, ошибка только при отмене контекста
func (g *MockGateway) Process(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentResult, error) {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if req.Amount <= 0 {
		return declined(declineInvalidAmount), nil
	}

	if reason := missingDetails(req.Details); reason != "" {
		g.log.Warn("MockGateway: declined method=%s: %s", req.Details.Method, reason)
		return declined(reason), nil
	}

	if !g.approve() {
		g.log.Warn("MockGateway: declined method=%s amount=%.2f %s", req.Details.Method, req.Amount, req.Currency)
		return declined(declineRejected), nil
	}

	txnID := "TXN_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	g.log.Info("MockGateway: approved txn=%s method=%s amount=%.2f %s", txnID, req.Details.Method, req.Amount, req.Currency)

	return &domain.PaymentResult{
		Success:       true,
		TransactionID: txnID,
	}, nil
}

func (g *MockGateway) approve() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Float64() < g.successRate
}

// missingDetails возвращает причину отказа, если не хватает реквизитов способа оплаты
func missingDetails(d domain.PaymentDetails) string {
	switch d.Method {
	case domain.PaymentCreditCard, domain.PaymentDebitCard:
		if d.CardNumber == "" || d.CardExpiry == "" || d.CardCVC == "" {
			return declineMissingCard
		}
	case domain.PaymentUPI:
		if d.UPIID == "" {
			return declineMissingUPI
		}
	case domain.PaymentNetBanking:
		if d.BankAccount == "" {
			return declineMissingBank
		}
	case domain.PaymentWallet:
		if d.WalletProvider == "" {
			return declineMissingWallet
		}
	default:
		return declineUnsupported
	}
	return ""
}

func declined(reason string) *domain.PaymentResult {
	return &domain.PaymentResult{Success: false, Error: reason}
}
