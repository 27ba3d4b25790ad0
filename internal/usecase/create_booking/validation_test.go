package create_booking

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

func timePtr(s types.TimeString) *types.TimeString {
	return &s
}

func validFixedRequest() *Request {
	return &Request{
		KioskID:             1,
		ClientID:            10,
		MediaID:             100,
		Date:                time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		SlotStart:           "09:00",
		SlotDurationSeconds: 3600,
		Mode:                domain.ModeFixed,
		StartTime:           timePtr("09:00"),
		EndTime:             timePtr("09:10"),
		Priority:            5,
	}
}

func validFrequencyRequest() *Request {
	req := validFixedRequest()
	req.Mode = domain.ModeRandomFrequency
	req.StartTime = nil
	req.EndTime = nil
	req.WindowStart = timePtr("09:00")
	req.WindowEnd = timePtr("10:00")
	req.TotalPlaySeconds = ptr.Ptr(300)
	return req
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr bool
	}{
		{name: "valid fixed request", mutate: func(req *Request) {}},
		{name: "missing kiosk", mutate: func(req *Request) { req.KioskID = 0 }, wantErr: true},
		{name: "missing client", mutate: func(req *Request) { req.ClientID = 0 }, wantErr: true},
		{name: "missing media", mutate: func(req *Request) { req.MediaID = 0 }, wantErr: true},
		{name: "missing date", mutate: func(req *Request) { req.Date = time.Time{} }, wantErr: true},
		{name: "missing slot start", mutate: func(req *Request) { req.SlotStart = "" }, wantErr: true},
		{name: "malformed slot start", mutate: func(req *Request) { req.SlotStart = "9am" }, wantErr: true},
		{name: "priority below range", mutate: func(req *Request) { req.Priority = -1 }, wantErr: true},
		{name: "priority above range", mutate: func(req *Request) { req.Priority = 11 }, wantErr: true},
		{name: "unknown mode", mutate: func(req *Request) { req.Mode = "round_robin" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validFixedRequest()
			tt.mutate(req)

			err := validateRequest(req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSlotDuration(t *testing.T) {
	assert.NoError(t, validateSlotDuration(3600))
	assert.NoError(t, validateSlotDuration(domain.MinSlotDurationSeconds))
	assert.NoError(t, validateSlotDuration(domain.MaxSlotDurationSeconds))

	assert.ErrorIs(t, validateSlotDuration(60), ErrValidation)
	assert.ErrorIs(t, validateSlotDuration(domain.MaxSlotDurationSeconds+60), ErrValidation)
	assert.ErrorIs(t, validateSlotDuration(3630), ErrValidation)
}

func TestValidateFixedTiming(t *testing.T) {
	slotEnd := types.TimeString("10:00")

	t.Run("interval inside slot", func(t *testing.T) {
		assert.NoError(t, validateFixedTiming(validFixedRequest(), slotEnd))
	})

	t.Run("missing interval", func(t *testing.T) {
		req := validFixedRequest()
		req.EndTime = nil
		assert.ErrorIs(t, validateFixedTiming(req, slotEnd), ErrValidation)
	})

	t.Run("start not before end", func(t *testing.T) {
		req := validFixedRequest()
		req.StartTime = timePtr("09:10")
		req.EndTime = timePtr("09:10")
		assert.ErrorIs(t, validateFixedTiming(req, slotEnd), ErrValidation)
	})

	t.Run("interval spills past slot end", func(t *testing.T) {
		req := validFixedRequest()
		req.StartTime = timePtr("09:50")
		req.EndTime = timePtr("10:05")
		assert.ErrorIs(t, validateFixedTiming(req, slotEnd), ErrValidation)
	})

	t.Run("interval starts before slot", func(t *testing.T) {
		req := validFixedRequest()
		req.StartTime = timePtr("08:55")
		req.EndTime = timePtr("09:05")
		assert.ErrorIs(t, validateFixedTiming(req, slotEnd), ErrValidation)
	})
}

func TestValidateRandomFrequencyTiming(t *testing.T) {
	slotEnd := types.TimeString("10:00")

	t.Run("window and budget inside slot", func(t *testing.T) {
		assert.NoError(t, validateRandomFrequencyTiming(validFrequencyRequest(), slotEnd))
	})

	t.Run("missing budget", func(t *testing.T) {
		req := validFrequencyRequest()
		req.TotalPlaySeconds = nil
		assert.ErrorIs(t, validateRandomFrequencyTiming(req, slotEnd), ErrValidation)
	})

	t.Run("non-positive budget", func(t *testing.T) {
		req := validFrequencyRequest()
		req.TotalPlaySeconds = ptr.Ptr(0)
		assert.ErrorIs(t, validateRandomFrequencyTiming(req, slotEnd), ErrValidation)
	})

	t.Run("budget wider than window", func(t *testing.T) {
		req := validFrequencyRequest()
		req.WindowStart = timePtr("09:00")
		req.WindowEnd = timePtr("09:10")
		req.TotalPlaySeconds = ptr.Ptr(601)
		assert.ErrorIs(t, validateRandomFrequencyTiming(req, slotEnd), ErrValidation)
	})

	t.Run("window outside slot", func(t *testing.T) {
		req := validFrequencyRequest()
		req.WindowEnd = timePtr("10:30")
		assert.ErrorIs(t, validateRandomFrequencyTiming(req, slotEnd), ErrValidation)
	})

	t.Run("window start after end", func(t *testing.T) {
		req := validFrequencyRequest()
		req.WindowStart = timePtr("09:40")
		req.WindowEnd = timePtr("09:20")
		assert.ErrorIs(t, validateRandomFrequencyTiming(req, slotEnd), ErrValidation)
	})
}

func TestValidateSlotAligned(t *testing.T) {
	day := kioskservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("08:00"),
		CloseTime: ptr.Ptr("22:00"),
	}

	t.Run("aligned slot", func(t *testing.T) {
		slotEnd, err := validateSlotAligned(day, "09:00", 3600)
		require.NoError(t, err)
		assert.Equal(t, types.TimeString("10:00"), slotEnd)
	})

	t.Run("grid follows opening time offset", func(t *testing.T) {
		halfPast := kioskservice.DaySchedule{
			IsOpen:    true,
			OpenTime:  ptr.Ptr("08:30"),
			CloseTime: ptr.Ptr("22:00"),
		}
		slotEnd, err := validateSlotAligned(halfPast, "09:30", 3600)
		require.NoError(t, err)
		assert.Equal(t, types.TimeString("10:30"), slotEnd)

		_, err = validateSlotAligned(halfPast, "09:00", 3600)
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("off-boundary slot rejected", func(t *testing.T) {
		_, err := validateSlotAligned(day, "09:15", 3600)
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("slot before opening rejected", func(t *testing.T) {
		_, err := validateSlotAligned(day, "07:00", 3600)
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("slot past closing rejected", func(t *testing.T) {
		shortDay := kioskservice.DaySchedule{
			IsOpen:    true,
			OpenTime:  ptr.Ptr("08:00"),
			CloseTime: ptr.Ptr("21:30"),
		}
		_, err := validateSlotAligned(shortDay, "21:00", 3600)
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("closed day rejected", func(t *testing.T) {
		_, err := validateSlotAligned(kioskservice.DaySchedule{IsOpen: false}, "09:00", 3600)
		assert.ErrorIs(t, err, ErrKioskClosed)
	})
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)

	assert.True(t, isDateInPast(time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), now))
	// Сегодняшняя дата не считается прошедшей, даже если день уже начался
	assert.False(t, isDateInPast(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, isDateInPast(time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC), now))
}
