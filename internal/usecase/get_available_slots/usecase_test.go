package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	vendorRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/vendor"
	"github.com/m04kA/WeddingMarketService/pkg/logger"
	"github.com/m04kA/WeddingMarketService/pkg/types"
)

type fakeVendors struct {
	vendor *domain.Vendor
}

func (f *fakeVendors) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	if f.vendor == nil || f.vendor.ID != id {
		return nil, vendorRepo.ErrVendorNotFound
	}
	return f.vendor, nil
}

type fakeSlots struct {
	slots []domain.TimeSlot
}

func (f *fakeSlots) GetByVendor(ctx context.Context, vendorID int64) ([]domain.TimeSlot, error) {
	return f.slots, nil
}

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

var now = time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

func newUseCase(vendor *domain.Vendor, slots []domain.TimeSlot) *UseCase {
	uc := NewUseCase(&fakeVendors{vendor: vendor}, &fakeSlots{slots: slots}, 90, logger.NewNop())
	uc.timeProvider = fixedTime(now)
	return uc
}

func approved() *domain.Vendor {
	return &domain.Vendor{ID: 5, IsApproved: true}
}

func TestExecute_DefaultSlotsForFutureDate(t *testing.T) {
	uc := newUseCase(approved(), nil)

	resp, err := uc.Execute(context.Background(), &Request{VendorID: 5, Date: now.AddDate(0, 0, 3)})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTimeSlots, resp.Slots)
}

func TestExecute_TodayOmitsStartedSlots(t *testing.T) {
	uc := newUseCase(approved(), nil)

	resp, err := uc.Execute(context.Background(), &Request{VendorID: 5, Date: now})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("14:00"), resp.Slots[0].Start)
	assert.Equal(t, types.TimeString("16:00"), resp.Slots[1].Start)
}

func TestExecute_PublishedSlotsSorted(t *testing.T) {
	published := []domain.TimeSlot{
		{Start: "18:00", End: "22:00"},
		{Start: "08:00", End: "10:00"},
	}
	uc := newUseCase(approved(), published)

	resp, err := uc.Execute(context.Background(), &Request{VendorID: 5, Date: now.AddDate(0, 0, 1)})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("08:00"), resp.Slots[0].Start)
}

func TestExecute_Errors(t *testing.T) {
	notApproved := approved()
	notApproved.IsApproved = false

	tests := []struct {
		name    string
		vendor  *domain.Vendor
		req     *Request
		wantErr error
	}{
		{"past date", approved(), &Request{VendorID: 5, Date: now.AddDate(0, 0, -1)}, ErrInvalidDate},
		{"beyond horizon", approved(), &Request{VendorID: 5, Date: now.AddDate(0, 0, 100)}, ErrDateTooFarInFuture},
		{"missing date", approved(), &Request{VendorID: 5}, ErrInvalidInput},
		{"unknown vendor", approved(), &Request{VendorID: 6, Date: now}, ErrVendorNotFound},
		{"not approved", notApproved, &Request{VendorID: 5, Date: now}, ErrVendorNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(tt.vendor, nil)
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
