package get_kiosk_bookings

import (
	"context"

	"github.com/m04kA/ADS-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetKioskBookings(ctx context.Context, req *models.GetKioskBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
