package domain

import "time"

// Review represents a user review of a vendor
type Review struct {
	ID       int64
	UserID   int64
	VendorID int64
	Rating   int
	Text     string

	// Snapshot of the author at the time of writing
	UserDisplayName string
	UserPhotoURL    *string

	CreatedAt time.Time
}

// RatingAggregate running mean of review ratings and their count
type RatingAggregate struct {
	Rating float64
	Count  int
}

// WithAdded returns the aggregate after one more review with the given rating
func (a RatingAggregate) WithAdded(rating int) RatingAggregate {
	count := a.Count
	if count < 0 {
		count = 0
	}
	newCount := count + 1
	return RatingAggregate{
		Rating: (a.Rating*float64(count) + float64(rating)) / float64(newCount),
		Count:  newCount,
	}
}

// WithRemoved returns the aggregate after the review with the given rating is gone.
// Removing the last review resets the aggregate to zero.
func (a RatingAggregate) WithRemoved(rating int) RatingAggregate {
	if a.Count <= 1 {
		return RatingAggregate{}
	}
	newCount := a.Count - 1
	return RatingAggregate{
		Rating: (a.Rating*float64(a.Count) - float64(rating)) / float64(newCount),
		Count:  newCount,
	}
}

// IsValidRating returns true if the rating is within 1..5
func IsValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
