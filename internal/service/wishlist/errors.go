package wishlist

import "errors"

var (
	// ErrVendorNotFound возвращается, когда вендор не найден или не одобрен
	ErrVendorNotFound = errors.New("vendor not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
