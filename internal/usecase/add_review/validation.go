package add_review

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VendorID <= 0 {
		return fmt.Errorf("%w: vendorID must be positive", ErrInvalidInput)
	}

	if req.Author == nil || req.Author.UserID <= 0 {
		return fmt.Errorf("%w: author is required", ErrInvalidInput)
	}

	if !domain.IsValidRating(req.Rating) {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, req.Rating)
	}

	length := utf8.RuneCountInString(strings.TrimSpace(req.Text))
	if length < domain.MinReviewTextLength {
		return fmt.Errorf("%w: at least %d characters", ErrInvalidText, domain.MinReviewTextLength)
	}
	if length > domain.MaxReviewTextLength {
		return fmt.Errorf("%w: at most %d characters", ErrInvalidText, domain.MaxReviewTextLength)
	}

	return nil
}
