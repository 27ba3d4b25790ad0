package kioskservice

// KioskStatus операционный статус киоска в реестре
type KioskStatus string

const (
	StatusOnline      KioskStatus = "online"
	StatusOffline     KioskStatus = "offline"
	StatusMaintenance KioskStatus = "maintenance"
)

// Kiosk модель киоска из реестра устройств
// Реестр является владельцем этих данных, сервис бронирования их не изменяет
type Kiosk struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Location     string       `json:"location"`
	VenueType    string       `json:"venueType"`
	Status       KioskStatus  `json:"status"`
	Timezone     string       `json:"timezone"`
	WorkingHours WeekSchedule `json:"workingHours"`
	PeakWindows  []PeakWindow `json:"peakWindows"`

	// Переопределение плоских цен по тарифам (опционально)
	PeakPrice    *float64 `json:"peakPrice,omitempty"`
	NonPeakPrice *float64 `json:"nonPeakPrice,omitempty"`
}

// IsOnline возвращает true, если киоск принимает бронирования
func (k *Kiosk) IsOnline() bool {
	return k.Status == StatusOnline
}

// WeekSchedule расписание работы киоска по дням недели
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule операционное окно киоска на один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "08:00"
	CloseTime *string `json:"closeTime,omitempty"` // "22:00"
}

// PeakWindow настроенное пиковое окно киоска
type PeakWindow struct {
	Start string `json:"start"` // "08:00"
	End   string `json:"end"`   // "10:00"
}
