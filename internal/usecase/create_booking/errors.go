package create_booking

import "errors"

var (
	// ErrKioskNotFound возвращается, когда киоск не найден в реестре
	ErrKioskNotFound = errors.New("create_booking: kiosk not found")

	// ErrKioskNotOnline возвращается, когда киоск выключен или на обслуживании
	ErrKioskNotOnline = errors.New("create_booking: kiosk is not online")

	// ErrClientNotFound возвращается, когда клиент не найден в каталоге
	ErrClientNotFound = errors.New("create_booking: client not found")

	// ErrMediaNotFound возвращается, когда медиа не найдено в каталоге
	ErrMediaNotFound = errors.New("create_booking: media not found")

	// ErrMediaOwnership возвращается, когда медиа принадлежит другому клиенту
	ErrMediaOwnership = errors.New("create_booking: media belongs to another client")

	// ErrValidation возвращается при структурно некорректном бронировании
	// (отсутствующие идентификаторы, некорректный тайминг режима)
	ErrValidation = errors.New("create_booking: validation failed")

	// ErrInvalidSlot возвращается, когда слот не попадает в операционную
	// сетку киоска (вне рабочих часов или не на границе слота)
	ErrInvalidSlot = errors.New("create_booking: invalid time slot")

	// ErrKioskClosed возвращается, когда киоск не работает в указанную дату
	ErrKioskClosed = errors.New("create_booking: kiosk is closed on this date")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
