package get_available_slots

import (
	"time"

	"github.com/m04kA/WeddingMarketService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	VendorID int64     // ID вендора
	Date     time.Time // Дата без времени
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date     time.Time
	VendorID int64
	Slots    []domain.TimeSlot
}
