package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VendorID <= 0 {
		return fmt.Errorf("%w: vendorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата внутри окна бронирования
func validateDate(date, now time.Time, horizonDays int) error {
	day := domain.DateOnly(date)
	today := domain.DateOnly(now)

	if day.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, day.Format(domain.DateFormat))
	}

	if day.After(today.AddDate(0, 0, horizonDays)) {
		return fmt.Errorf("%w: max %d days ahead", ErrDateTooFarInFuture, horizonDays)
	}

	return nil
}
