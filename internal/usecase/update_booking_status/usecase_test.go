package update_booking_status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	bookingRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/booking"
	vendorRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/vendor"
	"github.com/m04kA/WeddingMarketService/internal/integrations/events"
	"github.com/m04kA/WeddingMarketService/pkg/logger"
)

const (
	customerID    int64 = 1
	vendorOwnerID int64 = 2
	strangerID    int64 = 3
	adminID       int64 = 4
	vendorID      int64 = 10
)

type fakeBookings struct {
	bookings map[int64]*domain.Booking
	// statusBeforeUpdate подменяет статус между чтением и записью
	statusBeforeUpdate *domain.BookingStatus
	updates            int
}

func (f *fakeBookings) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	c := *b
	return &c, nil
}

func (f *fakeBookings) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, updatedAt time.Time) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrStatusChanged
	}
	if f.statusBeforeUpdate != nil {
		b.Status = *f.statusBeforeUpdate
	}
	if b.Status != from {
		return bookingRepo.ErrStatusChanged
	}
	f.updates++
	b.Status = to
	b.UpdatedAt = updatedAt
	return nil
}

type fakeVendors struct {
	err error
}

func (f *fakeVendors) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id != vendorID {
		return nil, vendorRepo.ErrVendorNotFound
	}
	return &domain.Vendor{ID: vendorID, UserID: vendorOwnerID, IsApproved: true}, nil
}

type fakePublisher struct {
	events []events.Event
}

func (f *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	f.events = append(f.events, event)
	return nil
}

type fakeMetrics struct {
	transitions int
}

func (f *fakeMetrics) IncBookingTransition(from, to string) { f.transitions++ }

func identity(id int64, role domain.Role) *domain.Identity {
	return &domain.Identity{UserID: id, Role: role}
}

func newUseCase(status domain.BookingStatus) (*UseCase, *fakeBookings, *fakePublisher) {
	bookings := &fakeBookings{bookings: map[int64]*domain.Booking{
		100: {ID: 100, UserID: customerID, VendorID: vendorID, Status: status},
	}}
	publisher := &fakePublisher{}
	uc := NewUseCase(bookings, &fakeVendors{}, publisher, &fakeMetrics{}, logger.NewNop())
	return uc, bookings, publisher
}

func TestExecute_TransitionTable(t *testing.T) {
	actors := map[domain.Role]*domain.Identity{
		domain.RoleUser:   identity(customerID, domain.RoleUser),
		domain.RoleVendor: identity(vendorOwnerID, domain.RoleVendor),
		domain.RoleAdmin:  identity(adminID, domain.RoleAdmin),
	}

	for _, from := range domain.AllBookingStatuses {
		for role, actor := range actors {
			for _, to := range domain.AllBookingStatuses {
				uc, bookings, publisher := newUseCase(from)

				resp, err := uc.Execute(context.Background(), &Request{BookingID: 100, Actor: actor, Status: to})

				stored := bookings.bookings[100].Status
				if domain.CanTransition(from, role, to) {
					require.NoError(t, err, "%s: %s -> %s", role, from, to)
					assert.Equal(t, to, resp.Booking.Status)
					assert.Equal(t, to, stored)
					assert.Len(t, publisher.events, 1)
					continue
				}

				assert.ErrorIs(t, err, ErrInvalidTransition, "%s: %s -> %s", role, from, to)
				assert.Equal(t, from, stored, "%s: %s -> %s", role, from, to)
				assert.Zero(t, bookings.updates)
				assert.Empty(t, publisher.events)
			}
		}
	}
}

func TestExecute_TerminalStatusesNeverChange(t *testing.T) {
	for _, from := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled} {
		for _, actor := range []*domain.Identity{
			identity(customerID, domain.RoleUser),
			identity(vendorOwnerID, domain.RoleVendor),
		} {
			for _, to := range domain.AllBookingStatuses {
				uc, bookings, _ := newUseCase(from)
				_, err := uc.Execute(context.Background(), &Request{BookingID: 100, Actor: actor, Status: to})
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, from, bookings.bookings[100].Status)
			}
		}
	}
}

func TestExecute_VendorCannotCompletePending(t *testing.T) {
	uc, bookings, _ := newUseCase(domain.StatusPending)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 100,
		Actor:     identity(vendorOwnerID, domain.RoleVendor),
		Status:    domain.StatusCompleted,
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.StatusPending, bookings.bookings[100].Status)
}

func TestExecute_ConcurrentChangeIsRejected(t *testing.T) {
	uc, bookings, publisher := newUseCase(domain.StatusPending)
	cancelled := domain.StatusCancelled
	bookings.statusBeforeUpdate = &cancelled

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 100,
		Actor:     identity(vendorOwnerID, domain.RoleVendor),
		Status:    domain.StatusConfirmed,
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.StatusCancelled, bookings.bookings[100].Status)
	assert.Empty(t, publisher.events)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("stranger", func(t *testing.T) {
		uc, _, _ := newUseCase(domain.StatusPending)
		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 100,
			Actor:     identity(strangerID, domain.RoleUser),
			Status:    domain.StatusCancelled,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		uc, _, _ := newUseCase(domain.StatusPending)
		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 999,
			Actor:     identity(customerID, domain.RoleUser),
			Status:    domain.StatusCancelled,
		})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("unknown status", func(t *testing.T) {
		uc, _, _ := newUseCase(domain.StatusPending)
		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 100,
			Actor:     identity(customerID, domain.RoleUser),
			Status:    "archived",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("vendor lookup failure", func(t *testing.T) {
		bookings := &fakeBookings{bookings: map[int64]*domain.Booking{
			100: {ID: 100, UserID: customerID, VendorID: vendorID, Status: domain.StatusPending},
		}}
		uc := NewUseCase(bookings, &fakeVendors{err: errors.New("db down")}, &fakePublisher{}, &fakeMetrics{}, logger.NewNop())
		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 100,
			Actor:     identity(customerID, domain.RoleUser),
			Status:    domain.StatusCancelled,
		})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
