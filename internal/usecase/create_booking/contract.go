package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	"github.com/m04kA/ADS-BookingService/internal/integrations/kioskservice"
	"github.com/m04kA/ADS-BookingService/internal/integrations/mediaservice"
	"github.com/m04kA/ADS-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.SlotBooking) (*domain.SlotBooking, error)
	GetBySlotRange(ctx context.Context, kioskID int64, date time.Time, from, to types.TimeString) ([]*domain.SlotBooking, error)
}

// KioskServiceClient интерфейс клиента реестра киосков
type KioskServiceClient interface {
	GetKiosk(ctx context.Context, kioskID int64) (*kioskservice.Kiosk, error)
}

// MediaServiceClient интерфейс клиента каталога клиентов и медиа
type MediaServiceClient interface {
	GetAdvertiser(ctx context.Context, clientID int64) (*mediaservice.Advertiser, error)
	GetMedia(ctx context.Context, mediaID int64) (*mediaservice.Media, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
