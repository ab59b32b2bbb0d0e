package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	bookingRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/booking"
	vendorRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/vendor"
	"github.com/m04kA/WeddingMarketService/internal/service/bookings/models"
	"github.com/m04kA/WeddingMarketService/pkg/logger"
	"github.com/m04kA/WeddingMarketService/pkg/ptr"
)

type fakeBookings struct {
	bookings   []*domain.Booking
	lastFilter domain.BookingsFilter
}

func (f *fakeBookings) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookings) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	var out []*domain.Booking
	for _, b := range f.bookings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.VendorID != nil && b.VendorID != *filter.VendorID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeVendors struct{}

func (fakeVendors) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	if id != 10 {
		return nil, vendorRepo.ErrVendorNotFound
	}
	return &domain.Vendor{ID: 10, UserID: 2}, nil
}

func newService() (*Service, *fakeBookings) {
	bookings := &fakeBookings{bookings: []*domain.Booking{
		{ID: 1, UserID: 1, VendorID: 10, Status: domain.StatusPending, PaymentMethod: ptr.Ptr(domain.PaymentUPI)},
		{ID: 2, UserID: 1, VendorID: 10, Status: domain.StatusCancelled},
		{ID: 3, UserID: 5, VendorID: 10, Status: domain.StatusPending},
	}}
	return NewService(bookings, fakeVendors{}, logger.NewNop()), bookings
}

func TestGetByID_Access(t *testing.T) {
	s, _ := newService()

	tests := []struct {
		name    string
		actor   *domain.Identity
		wantErr error
	}{
		{"owner", &domain.Identity{UserID: 1, Role: domain.RoleUser}, nil},
		{"vendor owner", &domain.Identity{UserID: 2, Role: domain.RoleVendor}, nil},
		{"admin", &domain.Identity{UserID: 99, Role: domain.RoleAdmin}, nil},
		{"stranger", &domain.Identity{UserID: 5, Role: domain.RoleUser}, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.GetByID(context.Background(), 1, tt.actor)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "pending", resp.Status)
			require.NotNil(t, resp.PaymentMethod)
			assert.Equal(t, "upi", *resp.PaymentMethod)
		})
	}

	_, err := s.GetByID(context.Background(), 404, &domain.Identity{UserID: 1})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	s, _ := newService()

	resp, err := s.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	resp, err = s.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 1, Status: ptr.Ptr("cancelled")})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)

	_, err = s.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 1, Status: ptr.Ptr("archived")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetVendorBookings(t *testing.T) {
	s, _ := newService()

	resp, err := s.GetVendorBookings(context.Background(), &models.GetVendorBookingsRequest{
		Actor:    &domain.Identity{UserID: 2, Role: domain.RoleVendor},
		VendorID: 10,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 3)

	_, err = s.GetVendorBookings(context.Background(), &models.GetVendorBookingsRequest{
		Actor:    &domain.Identity{UserID: 1, Role: domain.RoleUser},
		VendorID: 10,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.GetVendorBookings(context.Background(), &models.GetVendorBookingsRequest{
		Actor:    &domain.Identity{UserID: 2, Role: domain.RoleVendor},
		VendorID: 11,
	})
	assert.ErrorIs(t, err, ErrVendorNotFound)
}
