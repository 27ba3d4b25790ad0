package get_slot_grid

import (
	"time"

	"github.com/m04kA/ADS-BookingService/internal/domain"
)

// Request модель запроса сетки слотов
type Request struct {
	KioskID             int64     // ID киоска
	FromDate            time.Time // Начало диапазона (включительно)
	ToDate              time.Time // Конец диапазона (включительно)
	SlotDurationSeconds int       // Длительность слота; 0 = значение по умолчанию
}

// Response модель ответа с сеткой слотов
// Слоты упорядочены по дате и времени начала; статус и занятость каждого
// слота выводятся из прикрепленных бронирований
type Response struct {
	KioskID             int64
	KioskName           string
	FromDate            time.Time
	ToDate              time.Time
	SlotDurationSeconds int
	Slots               []*domain.TimeSlot
}
