package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	"github.com/m04kA/ADS-BookingService/internal/service/reports/models"
	"github.com/m04kA/ADS-BookingService/internal/usecase/get_slot_grid"
	"github.com/m04kA/ADS-BookingService/pkg/ptr"
	"github.com/m04kA/ADS-BookingService/pkg/types"
)

type mockSlotGrid struct {
	executeFunc func(ctx context.Context, req *get_slot_grid.Request) (*get_slot_grid.Response, error)
}

func (m *mockSlotGrid) Execute(ctx context.Context, req *get_slot_grid.Request) (*get_slot_grid.Response, error) {
	return m.executeFunc(ctx, req)
}

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

func slot(date time.Time, start types.TimeString, price float64, bookings ...*domain.SlotBooking) *domain.TimeSlot {
	return &domain.TimeSlot{
		KioskID:         1,
		Date:            date,
		StartTime:       start,
		DurationSeconds: 3600,
		Tier:            domain.TierNonPeak,
		BasePrice:       price,
		Bookings:        bookings,
	}
}

func fullBooking() *domain.SlotBooking {
	return &domain.SlotBooking{
		Mode:             domain.ModeRandomFrequency,
		Status:           domain.StatusScheduled,
		TotalPlaySeconds: ptr.Ptr(3600),
	}
}

func partialBooking() *domain.SlotBooking {
	return &domain.SlotBooking{
		Mode:             domain.ModeRandomFrequency,
		Status:           domain.StatusScheduled,
		TotalPlaySeconds: ptr.Ptr(1200),
	}
}

func TestService_GetOccupancyReport(t *testing.T) {
	ctx := context.Background()

	day1 := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)

	t.Run("aggregates per day and over the period", func(t *testing.T) {
		grid := &mockSlotGrid{
			executeFunc: func(ctx context.Context, req *get_slot_grid.Request) (*get_slot_grid.Response, error) {
				return &get_slot_grid.Response{
					KioskID:   1,
					KioskName: "Mall Atrium East",
					FromDate:  day1,
					ToDate:    day2,
					Slots: []*domain.TimeSlot{
						slot(day1, "09:00", 150, fullBooking()),
						slot(day1, "10:00", 75, partialBooking()),
						slot(day1, "11:00", 75),
						slot(day2, "09:00", 150, fullBooking(), partialBooking()),
						slot(day2, "10:00", 75),
					},
				}, nil
			},
		}
		svc := NewService(grid, &nopLogger{})

		resp, err := svc.GetOccupancyReport(ctx, &models.OccupancyReportRequest{
			KioskID:  1,
			FromDate: day1,
			ToDate:   day2,
		})
		require.NoError(t, err)

		assert.Equal(t, "Mall Atrium East", resp.KioskName)
		require.Len(t, resp.Days, 2)

		first := resp.Days[0]
		assert.Equal(t, "2026-09-15", first.Date)
		assert.Equal(t, 3, first.TotalSlots)
		assert.Equal(t, 1, first.FreeSlots)
		assert.Equal(t, 1, first.PartiallyBookedSlots)
		assert.Equal(t, 1, first.BookedSlots)
		assert.Zero(t, first.OverbookedSlots)
		// (1 + 0.5) / 3 * 100
		assert.InDelta(t, 50.0, first.OccupancyRate, 0.001)
		assert.Equal(t, 150.0, first.PotentialRevenue)

		second := resp.Days[1]
		assert.Equal(t, "2026-09-16", second.Date)
		assert.Equal(t, 1, second.BookedSlots)
		assert.Equal(t, 1, second.OverbookedSlots)

		assert.Equal(t, 5, resp.Summary.TotalSlots)
		assert.Equal(t, 2, resp.Summary.BookedSlots)
		assert.Equal(t, 300.0, resp.Summary.PotentialRevenue)
		// (2 + 0.5) / 5 * 100
		assert.InDelta(t, 50.0, resp.Summary.OccupancyRate, 0.001)
	})

	t.Run("kiosk not found maps to report error", func(t *testing.T) {
		grid := &mockSlotGrid{
			executeFunc: func(ctx context.Context, req *get_slot_grid.Request) (*get_slot_grid.Response, error) {
				return nil, get_slot_grid.ErrKioskNotFound
			},
		}
		svc := NewService(grid, &nopLogger{})

		_, err := svc.GetOccupancyReport(ctx, &models.OccupancyReportRequest{KioskID: 99, FromDate: day1, ToDate: day1})
		assert.ErrorIs(t, err, ErrKioskNotFound)
	})

	t.Run("invalid range maps to invalid input", func(t *testing.T) {
		grid := &mockSlotGrid{
			executeFunc: func(ctx context.Context, req *get_slot_grid.Request) (*get_slot_grid.Response, error) {
				return nil, get_slot_grid.ErrRangeTooWide
			},
		}
		svc := NewService(grid, &nopLogger{})

		_, err := svc.GetOccupancyReport(ctx, &models.OccupancyReportRequest{KioskID: 1, FromDate: day1, ToDate: day1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
