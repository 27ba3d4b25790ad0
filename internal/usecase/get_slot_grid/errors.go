package get_slot_grid

import "errors"

var (
	// ErrKioskNotFound возвращается, когда киоск не найден в реестре
	ErrKioskNotFound = errors.New("get_slot_grid: kiosk not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slot_grid: invalid input data")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("get_slot_grid: invalid date range")

	// ErrRangeTooWide возвращается, когда диапазон дат превышает лимит
	ErrRangeTooWide = errors.New("get_slot_grid: date range is too wide")

	// ErrInvalidSlotDuration возвращается при некорректной длительности слота
	ErrInvalidSlotDuration = errors.New("get_slot_grid: invalid slot duration")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slot_grid: internal error")
)
