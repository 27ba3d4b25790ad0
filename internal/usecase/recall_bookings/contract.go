package recall_bookings

import (
	"context"

	"github.com/m04kA/ADS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.SlotBooking, error)
	RecallBatch(ctx context.Context, ids []int64, reason string) (int64, error)
}

// OutboxRepository интерфейс outbox-репозитория команд остановки
type OutboxRepository interface {
	Enqueue(ctx context.Context, notifications []*domain.RecallNotification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
