package notifier

import (
	"context"

	"github.com/m04kA/ADS-BookingService/internal/domain"
)

// OutboxRepository интерфейс outbox-репозитория команд остановки
type OutboxRepository interface {
	ClaimPending(ctx context.Context, limit uint64) ([]*domain.RecallNotification, error)
	MarkDelivered(ctx context.Context, id int64) error
	MarkAttemptFailed(ctx context.Context, id int64, attempts int, lastError string, final bool) error
	CountPending(ctx context.Context) (int64, error)
}

// DevicePublisher интерфейс издателя команд остановки
type DevicePublisher interface {
	PublishStop(notification *domain.RecallNotification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
