package recall_batch

import (
	"context"

	recallBookings "github.com/m04kA/ADS-BookingService/internal/usecase/recall_bookings"
)

type RecallBookingsUseCase interface {
	Execute(ctx context.Context, req *recallBookings.Request) (*recallBookings.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
