package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	vendorRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/vendor"
	"github.com/m04kA/WeddingMarketService/pkg/logger"
)

type fakeReviews struct {
	reviews []*domain.Review
}

func (f *fakeReviews) ListByVendor(ctx context.Context, vendorID int64) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, r := range f.reviews {
		if r.VendorID == vendorID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviews) ListByUser(ctx context.Context, userID int64) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, r := range f.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeVendors struct{}

func (fakeVendors) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	if id != 10 {
		return nil, vendorRepo.ErrVendorNotFound
	}
	return &domain.Vendor{ID: 10}, nil
}

func TestListByVendor_NewestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeReviews{reviews: []*domain.Review{
		{ID: 1, UserID: 1, VendorID: 10, Rating: 5, CreatedAt: base},
		{ID: 2, UserID: 2, VendorID: 10, Rating: 3, CreatedAt: base.Add(time.Hour)},
		{ID: 3, UserID: 1, VendorID: 11, Rating: 4, CreatedAt: base.Add(2 * time.Hour)},
	}}
	s := NewService(repo, fakeVendors{}, logger.NewNop())

	resp, err := s.ListByVendor(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, resp.Reviews, 2)
	assert.Equal(t, int64(2), resp.Reviews[0].ID)

	_, err = s.ListByVendor(context.Background(), 11)
	assert.ErrorIs(t, err, ErrVendorNotFound)

	mine, err := s.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine.Reviews, 2)
	assert.Equal(t, int64(3), mine.Reviews[0].ID)
}
