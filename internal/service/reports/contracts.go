package reports

import (
	"context"

	"github.com/m04kA/ADS-BookingService/internal/usecase/get_slot_grid"
)

// SlotGridProvider интерфейс источника сетки слотов
// Отчет строится на той же производной сетке, что и выдача слотов
type SlotGridProvider interface {
	Execute(ctx context.Context, req *get_slot_grid.Request) (*get_slot_grid.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
