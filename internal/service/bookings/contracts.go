package bookings

import (
	"context"

	"github.com/m04kA/ADS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SlotBooking, error)
	GetByKioskWithFilter(ctx context.Context, filter domain.KioskBookingsFilter) ([]*domain.SlotBooking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Recall(ctx context.Context, id int64, reason string) error
	UpdateProofOfPlay(ctx context.Context, id int64, pop domain.ProofOfPlay) error
}

// OutboxRepository интерфейс outbox-репозитория команд остановки
type OutboxRepository interface {
	Enqueue(ctx context.Context, notifications []*domain.RecallNotification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
