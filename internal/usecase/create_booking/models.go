package create_booking

import (
	"time"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	"github.com/m04kA/ADS-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	KioskID             int64            // ID киоска
	ClientID            int64            // ID клиента из каталога
	MediaID             int64            // ID медиа-материала
	Date                time.Time        // Дата слота (без времени)
	SlotStart           types.TimeString // Время начала слота (например, "09:00")
	SlotDurationSeconds int              // Длительность слота; 0 = значение по умолчанию

	Mode domain.ScheduleMode // Режим размещения

	// fixed: точный интервал внутри слота
	StartTime *types.TimeString
	EndTime   *types.TimeString

	// random_frequency: окно и бюджет суммарного времени проигрывания
	WindowStart      *types.TimeString
	WindowEnd        *types.TimeString
	TotalPlaySeconds *int

	Priority int // Приоритет воспроизведения 1..10; 0 = значение по умолчанию
}

// Response модель ответа с созданным бронированием
// Поля занятости отражают состояние слота после создания: операторам видно
// перебронирование, хотя создание оно не блокирует
type Response struct {
	ID                  int64
	KioskID             int64
	Date                time.Time
	SlotStart           types.TimeString
	SlotDurationSeconds int

	ClientID   int64
	ClientName string
	MediaID    int64
	MediaName  string
	MediaType  string

	Mode             domain.ScheduleMode
	StartTime        *types.TimeString
	EndTime          *types.TimeString
	WindowStart      *types.TimeString
	WindowEnd        *types.TimeString
	TotalPlaySeconds *int

	Priority int
	Status   string

	SlotConsumedSeconds  int
	SlotOccupancyPercent float64
	Overbooked           bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
