package reports

import "errors"

var (
	// ErrKioskNotFound возвращается, когда киоск не найден в реестре
	ErrKioskNotFound = errors.New("reports: kiosk not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reports: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reports: internal error")
)
