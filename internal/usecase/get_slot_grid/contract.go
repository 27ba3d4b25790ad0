package get_slot_grid

import (
	"context"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	"github.com/m04kA/ADS-BookingService/internal/integrations/kioskservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByKioskWithFilter(ctx context.Context, filter domain.KioskBookingsFilter) ([]*domain.SlotBooking, error)
}

// KioskServiceClient интерфейс клиента реестра киосков
type KioskServiceClient interface {
	GetKiosk(ctx context.Context, kioskID int64) (*kioskservice.Kiosk, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
