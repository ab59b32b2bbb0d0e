package domain

import "github.com/m04kA/WeddingMarketService/pkg/types"

// Booking window and input limits
const (
	DefaultBookingHorizonDays = 90
	MaxNotesLength            = 500
	DefaultCurrency           = "INR"
)

// Review limits
const (
	MinRating               = 1
	MaxRating               = 5
	MinReviewTextLength     = 10
	MaxReviewTextLength     = 2000
	DefaultAggregateRetries = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultTimeSlots слоты, которые публикуются для вендора без собственного расписания
var DefaultTimeSlots = []TimeSlot{
	{Start: types.TimeString("09:00"), End: types.TimeString("11:00")},
	{Start: types.TimeString("11:00"), End: types.TimeString("13:00")},
	{Start: types.TimeString("14:00"), End: types.TimeString("16:00")},
	{Start: types.TimeString("16:00"), End: types.TimeString("18:00")},
}
