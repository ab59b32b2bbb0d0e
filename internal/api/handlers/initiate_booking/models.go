package initiate_booking

import (
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	initiateBooking "github.com/m04kA/WeddingMarketService/internal/usecase/initiate_booking"
	"github.com/m04kA/WeddingMarketService/pkg/types"
)

// DraftBookingRequest HTTP request model
type DraftBookingRequest struct {
	VendorID  int64  `json:"vendorId" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required"`      // "2026-10-15"
	StartTime string `json:"startTime" validate:"required"` // "09:00"
	EndTime   string `json:"endTime" validate:"required"`   // "11:00"
	Notes     string `json:"notes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *DraftBookingRequest) ToUseCaseRequest(userID int64) (*initiateBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &initiateBooking.Request{
		UserID:   userID,
		VendorID: r.VendorID,
		Date:     date,
		TimeSlot: domain.TimeSlot{Start: start, End: end},
		Notes:    r.Notes,
	}, nil
}
