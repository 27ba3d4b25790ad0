package recall_booking

import (
	"context"

	"github.com/m04kA/ADS-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Recall(ctx context.Context, bookingID int64, req *models.RecallBookingRequest) (*models.RecallResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
