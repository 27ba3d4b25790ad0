package occupancy_report

import (
	"context"

	"github.com/m04kA/ADS-BookingService/internal/service/reports/models"
)

type ReportService interface {
	GetOccupancyReport(ctx context.Context, req *models.OccupancyReportRequest) (*models.OccupancyReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
