package vendors

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	vendorRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/vendor"
	"github.com/m04kA/WeddingMarketService/internal/service/vendors/models"
	"github.com/m04kA/WeddingMarketService/pkg/logger"
	"github.com/m04kA/WeddingMarketService/pkg/ptr"
)

type fakeVendors struct {
	mu      sync.Mutex
	vendors map[int64]*domain.Vendor
	nextID  int64
	reads   int
	gate    chan struct{}
}

func newFakeVendors() *fakeVendors {
	return &fakeVendors{vendors: map[int64]*domain.Vendor{}}
}

func (f *fakeVendors) Create(ctx context.Context, v *domain.Vendor) (*domain.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.vendors {
		if existing.UserID == v.UserID {
			return nil, vendorRepo.ErrVendorExists
		}
	}
	f.nextID++
	c := *v
	c.ID = f.nextID
	f.vendors[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeVendors) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	if f.gate != nil {
		<-f.gate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	v, ok := f.vendors[id]
	if !ok {
		return nil, vendorRepo.ErrVendorNotFound
	}
	c := *v
	return &c, nil
}

func (f *fakeVendors) GetByUserID(ctx context.Context, userID int64) (*domain.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.vendors {
		if v.UserID == userID {
			c := *v
			return &c, nil
		}
	}
	return nil, vendorRepo.ErrVendorNotFound
}

func (f *fakeVendors) ListApproved(ctx context.Context, filter domain.VendorFilter) ([]*domain.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Vendor
	for _, v := range f.vendors {
		if v.IsApproved {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVendors) ListAll(ctx context.Context, filter domain.VendorFilter) ([]*domain.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Vendor
	for _, v := range f.vendors {
		if filter.Approved == nil || v.IsApproved == *filter.Approved {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVendors) UpdateProfile(ctx context.Context, v *domain.Vendor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.vendors[v.ID]
	if !ok {
		return vendorRepo.ErrVendorNotFound
	}
	c := *v
	c.Rating, c.ReviewCount = existing.Rating, existing.ReviewCount
	c.IsApproved, c.IsFeatured = existing.IsApproved, existing.IsFeatured
	f.vendors[v.ID] = &c
	return nil
}

func (f *fakeVendors) SetFlags(ctx context.Context, id int64, approved, featured *bool, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vendors[id]
	if !ok {
		return vendorRepo.ErrVendorNotFound
	}
	if approved != nil {
		v.IsApproved = *approved
	}
	if featured != nil {
		v.IsFeatured = *featured
	}
	return nil
}

type fakeSlots struct {
	slots map[int64][]domain.TimeSlot
}

func (f *fakeSlots) GetByVendor(ctx context.Context, vendorID int64) ([]domain.TimeSlot, error) {
	return f.slots[vendorID], nil
}

func (f *fakeSlots) Replace(ctx context.Context, vendorID int64, slots []domain.TimeSlot) error {
	f.slots[vendorID] = slots
	return nil
}

type fakeTx struct {
	calls int
}

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

var (
	vendorUser = &domain.Identity{UserID: 2, Role: domain.RoleVendor}
	otherUser  = &domain.Identity{UserID: 3, Role: domain.RoleUser}
	admin      = &domain.Identity{UserID: 9, Role: domain.RoleAdmin}
)

func newService() (*Service, *fakeVendors, *fakeSlots, *fakeTx) {
	vendors := newFakeVendors()
	slots := &fakeSlots{slots: map[int64][]domain.TimeSlot{}}
	tx := &fakeTx{}
	return NewService(vendors, slots, tx, logger.NewNop()), vendors, slots, tx
}

func createRequest() *models.CreateVendorRequest {
	return &models.CreateVendorRequest{
		Name:       " Rose Studio ",
		Category:   "photography",
		City:       "Jaipur",
		PriceRange: models.PriceRange{Min: 20000, Max: 50000},
	}
}

func TestCreate(t *testing.T) {
	s, _, _, _ := newService()

	resp, err := s.Create(context.Background(), vendorUser, createRequest())
	require.NoError(t, err)
	assert.Equal(t, "Rose Studio", resp.Name)
	assert.False(t, resp.IsApproved)
	assert.Zero(t, resp.ReviewCount)
	assert.NotNil(t, resp.GalleryImages)
	assert.NotNil(t, resp.Services)

	_, err = s.Create(context.Background(), vendorUser, createRequest())
	assert.ErrorIs(t, err, ErrVendorAlreadyExists)

	_, err = s.Create(context.Background(), otherUser, createRequest())
	assert.ErrorIs(t, err, ErrAccessDenied)

	req := createRequest()
	req.PriceRange = models.PriceRange{Min: 900, Max: 100}
	_, err = s.Create(context.Background(), &domain.Identity{UserID: 7, Role: domain.RoleVendor}, req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_UnapprovedVisibility(t *testing.T) {
	s, _, _, _ := newService()
	created, err := s.Create(context.Background(), vendorUser, createRequest())
	require.NoError(t, err)

	_, err = s.GetByID(context.Background(), created.ID, nil)
	assert.ErrorIs(t, err, ErrVendorNotFound)

	_, err = s.GetByID(context.Background(), created.ID, vendorUser)
	assert.NoError(t, err)

	_, err = s.SetFlags(context.Background(), created.ID, otherUser, &models.SetFlagsRequest{IsApproved: ptr.Ptr(true)})
	assert.ErrorIs(t, err, ErrAccessDenied)

	approved, err := s.SetFlags(context.Background(), created.ID, admin, &models.SetFlagsRequest{IsApproved: ptr.Ptr(true)})
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	_, err = s.GetByID(context.Background(), created.ID, nil)
	assert.NoError(t, err)
}

func TestGetByID_CollapsesConcurrentReads(t *testing.T) {
	s, vendors, _, _ := newService()
	vendors.vendors[1] = &domain.Vendor{ID: 1, IsApproved: true}
	vendors.gate = make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.GetByID(context.Background(), 1, nil)
			assert.NoError(t, err)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(vendors.gate)
	wg.Wait()

	assert.Less(t, vendors.reads, 10)
}

func TestGetByID_CancelledLeaderDoesNotFailWaiters(t *testing.T) {
	s, vendors, _, _ := newService()
	vendors.vendors[1] = &domain.Vendor{ID: 1, IsApproved: true}
	vendors.gate = make(chan struct{})

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderDone := make(chan struct{})
	go func() {
		defer close(leaderDone)
		_, _ = s.GetByID(leaderCtx, 1, nil)
	}()
	time.Sleep(20 * time.Millisecond)

	var waiterErr error
	waiterDone := make(chan struct{})
	go func() {
		defer close(waiterDone)
		_, waiterErr = s.GetByID(context.Background(), 1, nil)
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	close(vendors.gate)
	<-leaderDone
	<-waiterDone

	assert.NoError(t, waiterErr)
}

func TestListForAdmin(t *testing.T) {
	s, vendors, _, _ := newService()
	vendors.vendors[1] = &domain.Vendor{ID: 1, Name: "Approved", IsApproved: true}
	vendors.vendors[2] = &domain.Vendor{ID: 2, Name: "Pending"}

	_, err := s.ListForAdmin(context.Background(), otherUser, &models.ListVendorsRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.ListForAdmin(context.Background(), vendorUser, &models.ListVendorsRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)

	all, err := s.ListForAdmin(context.Background(), admin, &models.ListVendorsRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Vendors, 2)

	pending, err := s.ListForAdmin(context.Background(), admin, &models.ListVendorsRequest{Approved: ptr.Ptr(false)})
	require.NoError(t, err)
	require.Len(t, pending.Vendors, 1)
	assert.Equal(t, "Pending", pending.Vendors[0].Name)

	public, err := s.List(context.Background(), &models.ListVendorsRequest{})
	require.NoError(t, err)
	assert.Len(t, public.Vendors, 1)
}

func TestUpdate_KeepsAggregate(t *testing.T) {
	s, vendors, _, _ := newService()
	created, err := s.Create(context.Background(), vendorUser, createRequest())
	require.NoError(t, err)
	vendors.vendors[created.ID].Rating = 4.5
	vendors.vendors[created.ID].ReviewCount = 2

	resp, err := s.Update(context.Background(), created.ID, vendorUser, &models.UpdateVendorRequest{
		City: ptr.Ptr("Udaipur"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Udaipur", resp.City)
	assert.Equal(t, 4.5, vendors.vendors[created.ID].Rating)
	assert.Equal(t, 2, vendors.vendors[created.ID].ReviewCount)

	_, err = s.Update(context.Background(), created.ID, otherUser, &models.UpdateVendorRequest{City: ptr.Ptr("Goa")})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.Update(context.Background(), created.ID, vendorUser, &models.UpdateVendorRequest{
		PriceRange: &models.PriceRange{Min: 10, Max: 5},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSlots(t *testing.T) {
	s, vendors, _, tx := newService()
	vendors.vendors[1] = &domain.Vendor{ID: 1, UserID: vendorUser.UserID, IsApproved: true}

	resp, err := s.GetSlots(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, resp.Slots, len(domain.DefaultTimeSlots))

	resp, err = s.ReplaceSlots(context.Background(), 1, vendorUser, &models.ReplaceSlotsRequest{Slots: []models.TimeSlotItem{
		{StartTime: "18:00", EndTime: "22:00"},
		{StartTime: "10:00", EndTime: "12:00"},
	}})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "10:00", resp.Slots[0].StartTime)
	assert.Equal(t, 1, tx.calls)

	_, err = s.ReplaceSlots(context.Background(), 1, vendorUser, &models.ReplaceSlotsRequest{Slots: []models.TimeSlotItem{
		{StartTime: "10:00", EndTime: "12:00"},
		{StartTime: "11:00", EndTime: "13:00"},
	}})
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	_, err = s.ReplaceSlots(context.Background(), 1, vendorUser, &models.ReplaceSlotsRequest{Slots: []models.TimeSlotItem{
		{StartTime: "12:00", EndTime: "10:00"},
	}})
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	_, err = s.ReplaceSlots(context.Background(), 1, otherUser, &models.ReplaceSlotsRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
