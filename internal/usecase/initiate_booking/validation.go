package initiate_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VendorID <= 0 {
		return fmt.Errorf("%w: vendorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.TimeSlot.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidTimeSlot, err)
	}
	if err := req.TimeSlot.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidTimeSlot, err)
	}
	if !req.TimeSlot.Start.IsBefore(req.TimeSlot.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidTimeSlot)
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: max %d characters", ErrNotesTooLong, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше горизонта
// Даты сравниваются как календарные дни UTC
func validateDate(date, now time.Time, horizonDays int) error {
	day := domain.DateOnly(date)
	today := domain.DateOnly(now)

	if day.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, day.Format(domain.DateFormat))
	}

	if day.After(today.AddDate(0, 0, horizonDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, horizonDays)
	}

	return nil
}

// validateSlot проверяет, что слот опубликован вендором
func validateSlot(slot domain.TimeSlot, published []domain.TimeSlot) error {
	for _, p := range published {
		if p.Equal(slot) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s-%s is not published by vendor", ErrInvalidTimeSlot, slot.Start, slot.End)
}

// validateSlotNotStarted проверяет, что слот сегодняшнего дня ещё не начался
func validateSlotNotStarted(date time.Time, slot domain.TimeSlot, now time.Time) error {
	day := domain.DateOnly(date)
	if !day.Equal(domain.DateOnly(now)) {
		return nil
	}

	start, err := slot.Start.On(day)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	if !start.After(now.UTC()) {
		return fmt.Errorf("%w: slot started at %s", ErrTooLateToBook, slot.Start)
	}

	return nil
}
