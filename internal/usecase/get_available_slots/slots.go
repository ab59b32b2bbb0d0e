package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// filterStarted убирает слоты сегодняшнего дня, которые уже начались
func filterStarted(published []domain.TimeSlot, date, now time.Time) []domain.TimeSlot {
	day := domain.DateOnly(date)
	result := make([]domain.TimeSlot, 0, len(published))

	for _, slot := range published {
		if day.Equal(domain.DateOnly(now)) {
			start, err := slot.Start.On(day)
			if err != nil || !start.After(now.UTC()) {
				continue
			}
		}
		result = append(result, slot)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Start.IsBefore(result[j].Start)
	})

	return result
}
