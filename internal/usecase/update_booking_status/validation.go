package update_booking_status

import (
	"fmt"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Actor == nil || req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if !req.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	return nil
}

// resolveActorRole определяет, в какой роли актор действует над бронированием.
// Владелец профиля вендора действует как вендор, автор бронирования как пользователь.
// Администратор, не связанный с бронированием, таблицей переходов не покрыт
func resolveActorRole(actor *domain.Identity, booking *domain.Booking, vendor *domain.Vendor) (domain.Role, error) {
	if vendor != nil && vendor.IsOwnedBy(actor) {
		return domain.RoleVendor, nil
	}

	if booking.UserID == actor.UserID {
		return domain.RoleUser, nil
	}

	if actor.IsAdmin() {
		return domain.RoleAdmin, nil
	}

	return "", ErrAccessDenied
}
