package reports

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	"github.com/m04kA/ADS-BookingService/internal/service/reports/models"
	"github.com/m04kA/ADS-BookingService/internal/usecase/get_slot_grid"
)

// Service сервис отчетов о занятости
type Service struct {
	slotGrid SlotGridProvider
	logger   Logger
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(slotGrid SlotGridProvider, logger Logger) *Service {
	return &Service{
		slotGrid: slotGrid,
		logger:   logger,
	}
}

// GetOccupancyReport строит отчет о занятости киоска за период
// Отчет считается по производной сетке слотов: для каждого дня количество
// свободных, частично занятых и занятых слотов, агрегированная занятость
// и потенциальная выручка
func (s *Service) GetOccupancyReport(ctx context.Context, req *models.OccupancyReportRequest) (*models.OccupancyReportResponse, error) {
	s.logger.Info("GetOccupancyReport: kiosk=%d, period=%s to %s",
		req.KioskID, req.FromDate.Format(domain.DateFormat), req.ToDate.Format(domain.DateFormat))

	grid, err := s.slotGrid.Execute(ctx, &get_slot_grid.Request{
		KioskID:             req.KioskID,
		FromDate:            req.FromDate,
		ToDate:              req.ToDate,
		SlotDurationSeconds: req.SlotDurationSeconds,
	})
	if err != nil {
		switch {
		case errors.Is(err, get_slot_grid.ErrKioskNotFound):
			s.logger.Warn("GetOccupancyReport: kiosk id=%d not found", req.KioskID)
			return nil, ErrKioskNotFound
		case errors.Is(err, get_slot_grid.ErrInvalidInput),
			errors.Is(err, get_slot_grid.ErrInvalidRange),
			errors.Is(err, get_slot_grid.ErrRangeTooWide),
			errors.Is(err, get_slot_grid.ErrInvalidSlotDuration):
			s.logger.Warn("GetOccupancyReport: invalid request for kiosk=%d: %v", req.KioskID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			s.logger.Error("GetOccupancyReport: failed to build slot grid for kiosk=%d: %v", req.KioskID, err)
			return nil, fmt.Errorf("%w: failed to build slot grid: %v", ErrInternal, err)
		}
	}

	// Группируем слоты по дате, сохраняя порядок дней сетки
	byDate := make(map[string][]*domain.TimeSlot)
	var dates []string
	for _, slot := range grid.Slots {
		key := slot.Date.Format(domain.DateFormat)
		if _, ok := byDate[key]; !ok {
			dates = append(dates, key)
		}
		byDate[key] = append(byDate[key], slot)
	}

	resp := &models.OccupancyReportResponse{
		KioskID:   grid.KioskID,
		KioskName: grid.KioskName,
		FromDate:  req.FromDate.Format(domain.DateFormat),
		ToDate:    req.ToDate.Format(domain.DateFormat),
		Days:      make([]models.DayOccupancy, 0, len(dates)),
	}

	for _, date := range dates {
		slots := byDate[date]
		day := models.DayOccupancy{
			Date:             date,
			TotalSlots:       len(slots),
			OccupancyRate:    domain.AggregateOccupancyRate(slots),
			PotentialRevenue: domain.PotentialRevenue(slots),
		}

		for _, slot := range slots {
			switch slot.Status() {
			case domain.SlotFree:
				day.FreeSlots++
			case domain.SlotPartiallyBooked:
				day.PartiallyBookedSlots++
			case domain.SlotBooked:
				day.BookedSlots++
			}
			if slot.IsOverbooked() {
				day.OverbookedSlots++
			}
		}

		resp.Days = append(resp.Days, day)

		resp.Summary.TotalSlots += day.TotalSlots
		resp.Summary.FreeSlots += day.FreeSlots
		resp.Summary.PartiallyBookedSlots += day.PartiallyBookedSlots
		resp.Summary.BookedSlots += day.BookedSlots
		resp.Summary.OverbookedSlots += day.OverbookedSlots
		resp.Summary.PotentialRevenue += day.PotentialRevenue
	}

	resp.Summary.OccupancyRate = domain.AggregateOccupancyRate(grid.Slots)

	s.logger.Info("GetOccupancyReport: kiosk=%d, %d days, %d slots, occupancy=%.1f%%",
		req.KioskID, len(resp.Days), resp.Summary.TotalSlots, resp.Summary.OccupancyRate)
	return resp, nil
}
