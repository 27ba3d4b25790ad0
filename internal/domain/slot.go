package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/ADS-BookingService/pkg/types"
)

// SlotStatus is the derived occupancy status of a time slot
type SlotStatus string

const (
	SlotFree            SlotStatus = "free"
	SlotPartiallyBooked SlotStatus = "partially_booked"
	SlotBooked          SlotStatus = "booked"
)

// TimeSlot is a fixed-duration interval on one kiosk for one date.
// Slots are derived, never stored: the same kiosk, date and booking set
// always produce the same slot identity and attributes.
type TimeSlot struct {
	KioskID         int64
	Date            time.Time
	StartTime       types.TimeString
	DurationSeconds int

	Tier      PriceTier
	BasePrice float64

	Bookings []*SlotBooking
}

// Key returns the stable slot identity "kioskID:date:start"
func (s *TimeSlot) Key() string {
	return fmt.Sprintf("%d:%s:%s", s.KioskID, s.Date.Format(DateFormat), s.StartTime)
}

// EndTime returns the exclusive end boundary of the slot
func (s *TimeSlot) EndTime() (types.TimeString, error) {
	return s.StartTime.AddMinutes(s.DurationSeconds / 60)
}

// ConsumedSeconds sums the consumption of all capacity-counting bookings
func (s *TimeSlot) ConsumedSeconds() int {
	total := 0
	for _, b := range s.Bookings {
		total += b.ConsumedSeconds()
	}
	return total
}

// OccupancyPercent returns consumed/duration as a percentage, clamped to
// [0, 100]. Overbooked slots report exactly 100.
func (s *TimeSlot) OccupancyPercent() float64 {
	if s.DurationSeconds <= 0 {
		return 0
	}
	percent := float64(s.ConsumedSeconds()) / float64(s.DurationSeconds) * 100
	if percent > 100 {
		return 100
	}
	if percent < 0 {
		return 0
	}
	return percent
}

// IsOverbooked reports whether bookings consume more than the slot holds
func (s *TimeSlot) IsOverbooked() bool {
	return s.ConsumedSeconds() > s.DurationSeconds
}

// Status classifies the slot: free with no capacity-counting bookings,
// booked when consumption reaches the duration, partially booked otherwise.
// Exactly one of the three statuses holds for any slot.
func (s *TimeSlot) Status() SlotStatus {
	counting := 0
	for _, b := range s.Bookings {
		if b.CountsForCapacity() {
			counting++
		}
	}
	if counting == 0 {
		return SlotFree
	}
	if s.ConsumedSeconds() >= s.DurationSeconds {
		return SlotBooked
	}
	return SlotPartiallyBooked
}

// AggregateOccupancyRate computes the fleet-level utilization of a slot
// collection: booked slots count fully, partially booked slots count half.
// This is a reporting aggregate, distinct from per-slot OccupancyPercent.
func AggregateOccupancyRate(slots []*TimeSlot) float64 {
	if len(slots) == 0 {
		return 0
	}

	booked := 0
	partial := 0
	for _, s := range slots {
		switch s.Status() {
		case SlotBooked:
			booked++
		case SlotPartiallyBooked:
			partial++
		}
	}

	return (float64(booked) + 0.5*float64(partial)) / float64(len(slots)) * 100
}

// PotentialRevenue sums base prices over fully booked slots only.
// Free and partially booked slots are excluded from the total.
func PotentialRevenue(slots []*TimeSlot) float64 {
	total := 0.0
	for _, s := range slots {
		if s.Status() == SlotBooked {
			total += s.BasePrice
		}
	}
	return total
}
