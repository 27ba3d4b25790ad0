package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("bookings: invalid status transition")

	// ErrProofOfPlayNotAllowed возвращается, когда телеметрия воспроизведения
	// прикрепляется к бронированию, которое еще не начало воспроизводиться
	ErrProofOfPlayNotAllowed = errors.New("bookings: proof of play not allowed for this status")

	// ErrConfirmationRequired возвращается, когда оператор не подтвердил отзыв
	ErrConfirmationRequired = errors.New("bookings: confirmation required")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
