package get_slot_grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	"github.com/m04kA/ADS-BookingService/internal/integrations/kioskservice"
	"github.com/m04kA/ADS-BookingService/pkg/ptr"
	"github.com/m04kA/ADS-BookingService/pkg/types"
)

func openDay(open, close string) kioskservice.DaySchedule {
	return kioskservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr(open),
		CloseTime: ptr.Ptr(close),
	}
}

func TestGenerateDaySlots(t *testing.T) {
	t.Run("contiguous slots without gaps", func(t *testing.T) {
		starts, err := generateDaySlots(openDay("08:00", "10:00"), 1800)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"08:00", "08:30", "09:00", "09:30"}, starts)
	})

	t.Run("trailing slot not fitting before close is dropped", func(t *testing.T) {
		starts, err := generateDaySlots(openDay("08:00", "09:45"), 1800)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"08:00", "08:30", "09:00"}, starts)
	})

	t.Run("closed day yields no slots", func(t *testing.T) {
		starts, err := generateDaySlots(kioskservice.DaySchedule{IsOpen: false}, 1800)
		require.NoError(t, err)
		assert.Empty(t, starts)
	})

	t.Run("late evening schedule stops before midnight", func(t *testing.T) {
		starts, err := generateDaySlots(openDay("22:00", "23:30"), 3600)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"22:00"}, starts)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		first, err := generateDaySlots(openDay("09:00", "21:00"), 600)
		require.NoError(t, err)
		second, err := generateDaySlots(openDay("09:00", "21:00"), 600)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Len(t, first, 72)
	})
}

func TestBuildDaySlots(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	peakWindows := []domain.TimeWindow{{Start: "08:00", End: "10:00"}}
	prices := domain.TierPrices{Peak: 200, NonPeak: 90}

	slots := buildDaySlots(7, date, []types.TimeString{"09:00", "10:00"}, 3600, peakWindows, prices)
	require.Len(t, slots, 2)

	assert.Equal(t, domain.TierPeak, slots[0].Tier)
	assert.Equal(t, 200.0, slots[0].BasePrice)
	assert.Equal(t, domain.TierNonPeak, slots[1].Tier)
	assert.Equal(t, 90.0, slots[1].BasePrice)

	for _, s := range slots {
		assert.Equal(t, int64(7), s.KioskID)
		assert.Equal(t, date, s.Date)
		assert.Equal(t, 3600, s.DurationSeconds)
		assert.NotNil(t, s.Bookings)
	}
}

func TestAttachBookings(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	otherDate := time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)

	makeSlots := func() []*domain.TimeSlot {
		return buildDaySlots(1, date, []types.TimeString{"09:00", "10:00"}, 3600, nil, domain.DefaultTierPrices)
	}

	t.Run("booking lands in covering slot", func(t *testing.T) {
		slots := makeSlots()
		booking := &domain.SlotBooking{ID: 1, SlotDate: date, SlotStart: "09:00"}
		attachBookings(slots, []*domain.SlotBooking{booking})

		require.Len(t, slots[0].Bookings, 1)
		assert.Empty(t, slots[1].Bookings)
	})

	t.Run("booking created on a finer grid still attaches", func(t *testing.T) {
		slots := makeSlots()
		booking := &domain.SlotBooking{ID: 2, SlotDate: date, SlotStart: "10:30"}
		attachBookings(slots, []*domain.SlotBooking{booking})

		assert.Empty(t, slots[0].Bookings)
		require.Len(t, slots[1].Bookings, 1)
		assert.Equal(t, int64(2), slots[1].Bookings[0].ID)
	})

	t.Run("booking outside the grid date is ignored", func(t *testing.T) {
		slots := makeSlots()
		booking := &domain.SlotBooking{ID: 3, SlotDate: otherDate, SlotStart: "09:00"}
		attachBookings(slots, []*domain.SlotBooking{booking})

		assert.Empty(t, slots[0].Bookings)
		assert.Empty(t, slots[1].Bookings)
	})

	t.Run("slot end is exclusive", func(t *testing.T) {
		slots := makeSlots()
		booking := &domain.SlotBooking{ID: 4, SlotDate: date, SlotStart: "10:00"}
		attachBookings(slots, []*domain.SlotBooking{booking})

		assert.Empty(t, slots[0].Bookings)
		require.Len(t, slots[1].Bookings, 1)
	})
}

func TestTierPrices(t *testing.T) {
	t.Run("defaults without overrides", func(t *testing.T) {
		prices := tierPrices(&kioskservice.Kiosk{})
		assert.Equal(t, domain.DefaultTierPrices, prices)
	})

	t.Run("registry overrides applied", func(t *testing.T) {
		kiosk := &kioskservice.Kiosk{
			PeakPrice:    ptr.Ptr(300.0),
			NonPeakPrice: ptr.Ptr(120.0),
		}
		prices := tierPrices(kiosk)
		assert.Equal(t, 300.0, prices.Peak)
		assert.Equal(t, 120.0, prices.NonPeak)
	})
}

func TestParsePeakWindows(t *testing.T) {
	t.Run("valid windows", func(t *testing.T) {
		kiosk := &kioskservice.Kiosk{
			PeakWindows: []kioskservice.PeakWindow{
				{Start: "08:00", End: "10:00"},
				{Start: "18:00", End: "21:00"},
			},
		}
		windows, err := parsePeakWindows(kiosk)
		require.NoError(t, err)
		require.Len(t, windows, 2)
		assert.Equal(t, types.TimeString("18:00"), windows[1].Start)
	})

	t.Run("malformed window rejected", func(t *testing.T) {
		kiosk := &kioskservice.Kiosk{
			PeakWindows: []kioskservice.PeakWindow{{Start: "8am", End: "10:00"}},
		}
		_, err := parsePeakWindows(kiosk)
		assert.Error(t, err)
	})
}

func TestGetWorkingHoursForDay(t *testing.T) {
	kiosk := &kioskservice.Kiosk{
		WorkingHours: kioskservice.WeekSchedule{
			Monday: openDay("08:00", "22:00"),
			Sunday: kioskservice.DaySchedule{IsOpen: false},
		},
	}

	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	assert.True(t, getWorkingHoursForDay(kiosk, monday).IsOpen)
	assert.False(t, getWorkingHoursForDay(kiosk, sunday).IsOpen)
}
