package delete_review

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/internal/integrations/events"
	"github.com/m04kA/WeddingMarketService/internal/usecase/add_review"
	"github.com/m04kA/WeddingMarketService/internal/usecase/reviewtest"
	"github.com/m04kA/WeddingMarketService/pkg/logger"
)

const vendorID int64 = 10

type fakePublisher struct {
	events []events.Event
}

func (f *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	f.events = append(f.events, event)
	return nil
}

type fakeMetrics struct {
	conflicts int
}

func (f *fakeMetrics) IncAggregateConflict(operation string) { f.conflicts++ }

type env struct {
	store     *reviewtest.Store
	add       *add_review.UseCase
	del       *UseCase
	publisher *fakePublisher
	metrics   *fakeMetrics
}

func newEnv(vendorIDs ...int64) *env {
	store := reviewtest.NewStore(vendorIDs...)
	publisher := &fakePublisher{}
	metrics := &fakeMetrics{}
	return &env{
		store:     store,
		add:       add_review.NewUseCase(store, store, store, store, publisher, metrics, 5, false, logger.NewNop()),
		del:       NewUseCase(store, store, store, publisher, metrics, 3, logger.NewNop()),
		publisher: publisher,
		metrics:   metrics,
	}
}

func user(id int64) *domain.Identity {
	return &domain.Identity{UserID: id, Role: domain.RoleUser}
}

func (e *env) addReview(t *testing.T, userID int64, rating int) int64 {
	t.Helper()
	resp, err := e.add.Execute(context.Background(), &add_review.Request{
		VendorID: vendorID,
		Author:   user(userID),
		Rating:   rating,
		Text:     "Wonderful service overall",
	})
	require.NoError(t, err)
	return resp.Review.ID
}

func (e *env) deleteReview(t *testing.T, reviewID int64, actor *domain.Identity) domain.RatingAggregate {
	t.Helper()
	resp, err := e.del.Execute(context.Background(), &Request{VendorID: vendorID, ReviewID: reviewID, Actor: actor})
	require.NoError(t, err)
	return resp.Aggregate
}

func TestExecute_Scenario(t *testing.T) {
	e := newEnv(vendorID)

	five := e.addReview(t, 1, 5)
	three := e.addReview(t, 2, 3)
	assert.Equal(t, 4.0, e.store.Vendor(vendorID).Rating)

	agg := e.deleteReview(t, five, user(1))
	assert.Equal(t, domain.RatingAggregate{Rating: 3, Count: 1}, agg)

	agg = e.deleteReview(t, three, user(2))
	assert.Equal(t, domain.RatingAggregate{}, agg)

	v := e.store.Vendor(vendorID)
	assert.Zero(t, v.Rating)
	assert.Zero(t, v.ReviewCount)
	assert.Equal(t, events.TypeReviewDeleted, e.publisher.events[len(e.publisher.events)-1].Type)
}

func TestExecute_AggregateMatchesMeanAfterRandomSequence(t *testing.T) {
	e := newEnv(vendorID)
	rnd := rand.New(rand.NewSource(42))

	var live []int64
	for i := 0; i < 500; i++ {
		if len(live) > 0 && rnd.Intn(3) == 0 {
			idx := rnd.Intn(len(live))
			e.deleteReview(t, live[idx], &domain.Identity{UserID: 999, Role: domain.RoleAdmin})
			live = append(live[:idx], live[idx+1:]...)
		} else {
			live = append(live, e.addReview(t, int64(i+1), rnd.Intn(5)+1))
		}

		ratings := e.store.Ratings(vendorID)
		v := e.store.Vendor(vendorID)
		require.Equal(t, len(ratings), v.ReviewCount)
		if len(ratings) == 0 {
			require.Zero(t, v.Rating)
			continue
		}

		sum := 0
		for _, r := range ratings {
			sum += r
		}
		require.InEpsilon(t, float64(sum)/float64(len(ratings)), v.Rating, 1e-9)
	}
}

func TestExecute_AccessRules(t *testing.T) {
	e := newEnv(vendorID)
	id := e.addReview(t, 1, 4)

	_, err := e.del.Execute(context.Background(), &Request{VendorID: vendorID, ReviewID: id, Actor: user(2)})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 1, e.store.Vendor(vendorID).ReviewCount)

	agg := e.deleteReview(t, id, &domain.Identity{UserID: 50, Role: domain.RoleAdmin})
	assert.Zero(t, agg.Count)
}

func TestExecute_NotFound(t *testing.T) {
	e := newEnv(vendorID, 11)
	id := e.addReview(t, 1, 4)

	t.Run("missing review", func(t *testing.T) {
		_, err := e.del.Execute(context.Background(), &Request{VendorID: vendorID, ReviewID: 999, Actor: user(1)})
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})

	t.Run("review of another vendor", func(t *testing.T) {
		_, err := e.del.Execute(context.Background(), &Request{VendorID: 11, ReviewID: id, Actor: user(1)})
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})

	t.Run("deleted twice", func(t *testing.T) {
		e.deleteReview(t, id, user(1))
		_, err := e.del.Execute(context.Background(), &Request{VendorID: vendorID, ReviewID: id, Actor: user(1)})
		assert.ErrorIs(t, err, ErrReviewNotFound)
		assert.Zero(t, e.store.Vendor(vendorID).ReviewCount)
	})
}

func TestExecute_RetriesAndGivesUp(t *testing.T) {
	e := newEnv(vendorID)
	id := e.addReview(t, 1, 4)

	e.store.InjectConflicts(1)
	agg := e.deleteReview(t, id, user(1))
	assert.Zero(t, agg.Count)
	assert.Equal(t, 1, e.metrics.conflicts)

	id = e.addReview(t, 1, 2)
	e.store.InjectConflicts(10)
	_, err := e.del.Execute(context.Background(), &Request{VendorID: vendorID, ReviewID: id, Actor: user(1)})
	assert.ErrorIs(t, err, ErrAggregateConflict)
	assert.Equal(t, []int{2}, e.store.Ratings(vendorID))
	assert.Equal(t, 1, e.store.Vendor(vendorID).ReviewCount)
}
