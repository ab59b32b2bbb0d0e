// Package reviewtest содержит хранилище в памяти для тестов отзывов.
// Транзакции сериализуются мьютексом и откатываются снимком состояния
package reviewtest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	reviewRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/review"
	vendorRepo "github.com/m04kA/WeddingMarketService/internal/infra/storage/vendor"
	"github.com/m04kA/WeddingMarketService/pkg/txmanager"
)

// Store вендоры, отзывы и завершённые бронирования в памяти
type Store struct {
	mu        sync.Mutex
	vendors   map[int64]*domain.Vendor
	reviews   map[int64]*domain.Review
	completed map[[2]int64]bool
	nextID    int64

	// conflicts сколько следующих транзакций завершится serialization failure
	conflicts    int
	transactions int
}

// NewStore создает хранилище с вендорами без отзывов
func NewStore(vendorIDs ...int64) *Store {
	s := &Store{
		vendors:   make(map[int64]*domain.Vendor),
		reviews:   make(map[int64]*domain.Review),
		completed: make(map[[2]int64]bool),
	}
	for _, id := range vendorIDs {
		s.vendors[id] = &domain.Vendor{ID: id, UserID: 1000 + id, IsApproved: true}
	}
	return s
}

// InjectConflicts заставляет следующие n транзакций откатиться с конфликтом
func (s *Store) InjectConflicts(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conflicts = n
}

// MarkCompleted отмечает завершённое бронирование пользователя у вендора
func (s *Store) MarkCompleted(userID, vendorID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed[[2]int64{userID, vendorID}] = true
}

// Vendor возвращает копию вендора
func (s *Store) Vendor(id int64) domain.Vendor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.vendors[id]
}

// Ratings возвращает оценки текущих отзывов вендора
func (s *Store) Ratings(vendorID int64) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []int64
	for id, r := range s.reviews {
		if r.VendorID == vendorID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ratings := make([]int, 0, len(ids))
	for _, id := range ids {
		ratings = append(ratings, s.reviews[id].Rating)
	}
	return ratings
}

// Transactions количество завершённых попыток транзакций
func (s *Store) Transactions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactions
}

// Do выполняет fn под мьютексом, при ошибке восстанавливает состояние
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions++
	vendors, reviews, nextID := s.snapshot()

	err := fn(ctx)
	if err == nil && s.conflicts > 0 {
		s.conflicts--
		err = fmt.Errorf("%w: injected", txmanager.ErrSerializationFailure)
	}
	if err != nil {
		s.vendors, s.reviews, s.nextID = vendors, reviews, nextID
		return err
	}
	return nil
}

func (s *Store) snapshot() (map[int64]*domain.Vendor, map[int64]*domain.Review, int64) {
	vendors := make(map[int64]*domain.Vendor, len(s.vendors))
	for id, v := range s.vendors {
		c := *v
		vendors[id] = &c
	}
	reviews := make(map[int64]*domain.Review, len(s.reviews))
	for id, r := range s.reviews {
		c := *r
		reviews[id] = &c
	}
	return vendors, reviews, s.nextID
}

// Методы ниже вызываются только внутри Do

// GetForUpdate возвращает вендора
func (s *Store) GetForUpdate(_ context.Context, id int64) (*domain.Vendor, error) {
	v, ok := s.vendors[id]
	if !ok {
		return nil, vendorRepo.ErrVendorNotFound
	}
	c := *v
	return &c, nil
}

// UpdateAggregate записывает агрегат вендора
func (s *Store) UpdateAggregate(_ context.Context, id int64, agg domain.RatingAggregate, updatedAt time.Time) error {
	v, ok := s.vendors[id]
	if !ok {
		return vendorRepo.ErrVendorNotFound
	}
	v.Rating = agg.Rating
	v.ReviewCount = agg.Count
	v.UpdatedAt = updatedAt
	return nil
}

// Create сохраняет отзыв
func (s *Store) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	s.nextID++
	c := *review
	c.ID = s.nextID
	s.reviews[c.ID] = &c
	out := c
	return &out, nil
}

// GetByID возвращает отзыв
func (s *Store) GetByID(_ context.Context, id int64) (*domain.Review, error) {
	r, ok := s.reviews[id]
	if !ok {
		return nil, reviewRepo.ErrReviewNotFound
	}
	c := *r
	return &c, nil
}

// Delete удаляет отзыв вендора
func (s *Store) Delete(_ context.Context, id, vendorID int64) error {
	r, ok := s.reviews[id]
	if !ok || r.VendorID != vendorID {
		return reviewRepo.ErrReviewNotFound
	}
	delete(s.reviews, id)
	return nil
}

// HasCompletedBooking проверяет завершённое бронирование
func (s *Store) HasCompletedBooking(_ context.Context, userID, vendorID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed[[2]int64{userID, vendorID}], nil
}
