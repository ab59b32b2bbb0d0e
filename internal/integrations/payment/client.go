package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// Client клиент внешнего платёжного шлюза
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента платёжного шлюза
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Process отправляет платёж в шлюз
// Отказ шлюза (402) возвращается в результате, сетевые ошибки и таймауты как error
func (c *Client) Process(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentResult, error) {
	url := fmt.Sprintf("%s/payments", c.baseURL)

	body, err := json.Marshal(toChargeRequest(req))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusPaymentRequired:
		// Продолжаем обработку
	default:
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var charge chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&charge); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if resp.StatusCode == http.StatusPaymentRequired || !charge.Success {
		c.log.Warn("PaymentClient: declined method=%s: %s", req.Details.Method, charge.Error)
		return declined(charge.Error), nil
	}

	if charge.TransactionID == "" {
		return nil, fmt.Errorf("%w: approved payment without transaction id", ErrInvalidResponse)
	}

	return &domain.PaymentResult{
		Success:       true,
		TransactionID: charge.TransactionID,
	}, nil
}

func toChargeRequest(req domain.PaymentRequest) chargeRequest {
	d := req.Details
	return chargeRequest{
		AmountMinor:    int64(math.Round(req.Amount * 100)),
		Currency:       req.Currency,
		Description:    req.Description,
		Method:         string(d.Method),
		CardNumber:     d.CardNumber,
		CardExpiry:     d.CardExpiry,
		CardCVC:        d.CardCVC,
		UPIID:          d.UPIID,
		BankAccount:    d.BankAccount,
		WalletProvider: d.WalletProvider,
	}
}
