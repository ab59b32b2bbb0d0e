package add_review

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/internal/integrations/events"
	"github.com/m04kA/WeddingMarketService/internal/usecase/reviewtest"
	"github.com/m04kA/WeddingMarketService/pkg/dbmetrics"
	"github.com/m04kA/WeddingMarketService/pkg/logger"
	"github.com/m04kA/WeddingMarketService/pkg/txmanager"
)

const vendorID int64 = 10

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

type fakeMetrics struct {
	mu        sync.Mutex
	conflicts int
}

func (f *fakeMetrics) IncAggregateConflict(operation string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conflicts++
}

func newUseCase(store *reviewtest.Store, maxRetries int, requireBooking bool) (*UseCase, *fakePublisher, *fakeMetrics) {
	publisher := &fakePublisher{}
	metrics := &fakeMetrics{}
	uc := NewUseCase(store, store, store, store, publisher, metrics, maxRetries, requireBooking, logger.NewNop())
	return uc, publisher, metrics
}

func author(id int64) *domain.Identity {
	return &domain.Identity{UserID: id, DisplayName: "Guest", Role: domain.RoleUser}
}

func request(userID int64, rating int) *Request {
	return &Request{
		VendorID: vendorID,
		Author:   author(userID),
		Rating:   rating,
		Text:     "Lovely decorations, on time.",
	}
}

func TestExecute_UpdatesAggregate(t *testing.T) {
	store := reviewtest.NewStore(vendorID)
	uc, publisher, _ := newUseCase(store, 5, false)

	resp, err := uc.Execute(context.Background(), request(1, 5))
	require.NoError(t, err)
	assert.Equal(t, domain.RatingAggregate{Rating: 5, Count: 1}, resp.Aggregate)
	assert.Equal(t, "Guest", resp.Review.UserDisplayName)

	resp, err = uc.Execute(context.Background(), request(2, 3))
	require.NoError(t, err)
	assert.Equal(t, domain.RatingAggregate{Rating: 4, Count: 2}, resp.Aggregate)

	v := store.Vendor(vendorID)
	assert.Equal(t, 4.0, v.Rating)
	assert.Equal(t, 2, v.ReviewCount)
	assert.Len(t, publisher.events, 2)
	assert.Equal(t, events.TypeReviewAdded, publisher.events[0].Type)
}

func TestExecute_ValidationBeforeIO(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"rating zero", request(1, 0), ErrInvalidRating},
		{"rating six", request(1, 6), ErrInvalidRating},
		{"short text", &Request{VendorID: vendorID, Author: author(1), Rating: 4, Text: "   ok   "}, ErrInvalidText},
		{"long text", &Request{VendorID: vendorID, Author: author(1), Rating: 4, Text: strings.Repeat("a", 2001)}, ErrInvalidText},
		{"no author", &Request{VendorID: vendorID, Rating: 4, Text: "Lovely decorations"}, ErrInvalidInput},
		{"no vendor", &Request{Author: author(1), Rating: 4, Text: "Lovely decorations"}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := reviewtest.NewStore(vendorID)
			uc, _, _ := newUseCase(store, 5, false)

			_, err := uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, store.Transactions())
		})
	}
}

func TestExecute_UnknownVendorWritesNothing(t *testing.T) {
	store := reviewtest.NewStore(vendorID)
	uc, publisher, _ := newUseCase(store, 5, false)

	req := request(1, 4)
	req.VendorID = 999

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrVendorNotFound)
	assert.Empty(t, store.Ratings(999))
	assert.Empty(t, publisher.events)
}

func TestExecute_RetriesConflicts(t *testing.T) {
	store := reviewtest.NewStore(vendorID)
	store.InjectConflicts(2)
	uc, _, metrics := newUseCase(store, 5, false)

	resp, err := uc.Execute(context.Background(), request(1, 4))

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Aggregate.Count)
	assert.Equal(t, 3, store.Transactions())
	assert.Equal(t, 2, metrics.conflicts)
	assert.Equal(t, []int{4}, store.Ratings(vendorID))
}

func TestExecute_ConflictRetriesAreBounded(t *testing.T) {
	store := reviewtest.NewStore(vendorID)
	store.InjectConflicts(10)
	uc, publisher, metrics := newUseCase(store, 3, false)

	_, err := uc.Execute(context.Background(), request(1, 4))

	assert.ErrorIs(t, err, ErrAggregateConflict)
	assert.Equal(t, 3, store.Transactions())
	assert.Equal(t, 3, metrics.conflicts)
	assert.Empty(t, store.Ratings(vendorID))
	assert.Zero(t, store.Vendor(vendorID).ReviewCount)
	assert.Empty(t, publisher.events)
}

func TestExecute_RequireCompletedBooking(t *testing.T) {
	store := reviewtest.NewStore(vendorID)
	uc, _, _ := newUseCase(store, 5, true)

	_, err := uc.Execute(context.Background(), request(1, 5))
	assert.ErrorIs(t, err, ErrReviewNotAllowed)

	store.MarkCompleted(1, vendorID)
	_, err = uc.Execute(context.Background(), request(1, 5))
	assert.NoError(t, err)
}

func TestExecute_ConcurrentAddsLoseNoUpdates(t *testing.T) {
	store := reviewtest.NewStore(vendorID)
	uc, _, _ := newUseCase(store, 5, false)

	const n = 50
	var (
		wg  sync.WaitGroup
		sum int
	)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		rating := i%5 + 1
		sum += rating
		wg.Add(1)
		go func(userID int64, rating int) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), request(userID, rating))
			errs <- err
		}(int64(i+1), rating)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	v := store.Vendor(vendorID)
	assert.Equal(t, n, v.ReviewCount)
	assert.InEpsilon(t, float64(sum)/n, v.Rating, 1e-9)
}

type recordingTx struct{}

func (recordingTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (recordingTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (recordingTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (recordingTx) Commit() error   { return nil }
func (recordingTx) Rollback() error { return nil }

type recordingBeginner struct {
	opts []*sql.TxOptions
}

func (b *recordingBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.opts = append(b.opts, opts)
	return recordingTx{}, nil
}

func TestExecute_UsesReadCommittedWithRowLock(t *testing.T) {
	store := reviewtest.NewStore(vendorID)
	beginner := &recordingBeginner{}
	uc := NewUseCase(txmanager.NewTransactionManager(beginner), store, store, store,
		&fakePublisher{}, &fakeMetrics{}, 5, false, logger.NewNop())

	_, err := uc.Execute(context.Background(), request(1, 4))
	require.NoError(t, err)

	require.Len(t, beginner.opts, 1)
	assert.Equal(t, sql.LevelReadCommitted, beginner.opts[0].Isolation)
}

func TestBackoff_GrowsWithJitter(t *testing.T) {
	for attempt := 1; attempt <= 5; attempt++ {
		d := backoff(attempt)
		assert.GreaterOrEqual(t, d, retryBackoff*time.Duration(attempt))
		assert.Less(t, d, retryBackoff*time.Duration(attempt+1))
	}
}
