package kioskservice

import "errors"

var (
	// ErrKioskNotFound возвращается, когда киоск не найден в реестре
	ErrKioskNotFound = errors.New("kioskservice: kiosk not found")

	// ErrInvalidResponse возвращается при некорректном ответе реестра
	ErrInvalidResponse = errors.New("kioskservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("kioskservice: internal error")
)
