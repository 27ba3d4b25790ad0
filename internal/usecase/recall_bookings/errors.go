package recall_bookings

import "errors"

var (
	// ErrValidation возвращается при структурно некорректном запросе
	// (пустой список, слишком большая пачка, слишком длинная причина)
	ErrValidation = errors.New("recall_bookings: validation failed")

	// ErrConfirmationRequired возвращается, когда оператор не подтвердил отзыв
	ErrConfirmationRequired = errors.New("recall_bookings: confirmation required")

	// ErrBookingNotFound возвращается, когда хотя бы одно бронирование
	// из пачки не существует; пачка отклоняется целиком
	ErrBookingNotFound = errors.New("recall_bookings: booking not found")

	// ErrAlreadyCompleted возвращается, когда хотя бы одно бронирование
	// уже завершено; завершенные размещения не отзываются
	ErrAlreadyCompleted = errors.New("recall_bookings: booking already completed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("recall_bookings: internal error")
)
