package wishlist

import "errors"

var (
	// ErrRedis возвращается при ошибке обращения к redis
	ErrRedis = errors.New("wishlist.repository: redis error")

	// ErrCorruptedMember возвращается, если в множестве лежит не id вендора
	ErrCorruptedMember = errors.New("wishlist.repository: corrupted member")
)
