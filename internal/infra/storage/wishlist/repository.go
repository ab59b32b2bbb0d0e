package wishlist

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "wishlist:"

// Repository избранные вендоры пользователя, множество redis на пользователя
type Repository struct {
	client *redis.Client
}

// NewRepository создает новый экземпляр репозитория избранного
func NewRepository(client *redis.Client) *Repository {
	return &Repository{client: client}
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}

// Add добавляет вендора в избранное. Повторное добавление не ошибка
func (r *Repository) Add(ctx context.Context, userID, vendorID int64) error {
	if err := r.client.SAdd(ctx, key(userID), strconv.FormatInt(vendorID, 10)).Err(); err != nil {
		return fmt.Errorf("%w: Add: %v", ErrRedis, err)
	}
	return nil
}

// Remove удаляет вендора из избранного
func (r *Repository) Remove(ctx context.Context, userID, vendorID int64) error {
	if err := r.client.SRem(ctx, key(userID), strconv.FormatInt(vendorID, 10)).Err(); err != nil {
		return fmt.Errorf("%w: Remove: %v", ErrRedis, err)
	}
	return nil
}

// Contains проверяет, что вендор в избранном
func (r *Repository) Contains(ctx context.Context, userID, vendorID int64) (bool, error) {
	ok, err := r.client.SIsMember(ctx, key(userID), strconv.FormatInt(vendorID, 10)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: Contains: %v", ErrRedis, err)
	}
	return ok, nil
}

// List возвращает id вендоров из избранного по возрастанию
func (r *Repository) List(ctx context.Context, userID int64) ([]int64, error) {
	members, err := r.client.SMembers(ctx, key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: List: %v", ErrRedis, err)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrCorruptedMember, m)
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}
