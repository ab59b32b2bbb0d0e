package delete_review

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VendorID <= 0 {
		return fmt.Errorf("%w: vendorID must be positive", ErrInvalidInput)
	}

	if req.ReviewID <= 0 {
		return fmt.Errorf("%w: reviewID must be positive", ErrInvalidInput)
	}

	if req.Actor == nil || req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	return nil
}
