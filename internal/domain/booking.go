package domain

import (
	"time"

	"github.com/m04kA/ADS-BookingService/pkg/types"
)

// BookingStatus represents the lifecycle status of a slot booking
type BookingStatus string

const (
	StatusScheduled BookingStatus = "scheduled"
	StatusPlaying   BookingStatus = "playing"
	StatusCompleted BookingStatus = "completed"
	StatusRecalled  BookingStatus = "recalled"
)

// ScheduleMode represents how a booking's play time is placed inside its slot
type ScheduleMode string

const (
	// ModeFixed plays the media at an exact start/end interval within the slot
	ModeFixed ScheduleMode = "fixed"

	// ModeRandomFrequency distributes a total play-time budget inside a window;
	// the playback device owns the actual placement
	ModeRandomFrequency ScheduleMode = "random_frequency"
)

// ProofOfPlay holds post-playback telemetry reported by the kiosk
type ProofOfPlay struct {
	ActualPlaySeconds    *int
	Impressions          *int64
	AttentivenessPercent *float64
}

// SlotBooking represents a client's claim on one time slot of one kiosk
type SlotBooking struct {
	ID int64

	// Slot reference: (kiosk, date, slot start) is the derived slot key
	KioskID             int64
	SlotDate            time.Time
	SlotStart           types.TimeString
	SlotDurationSeconds int

	// Denormalized client/media data from the catalog service
	ClientID             int64
	ClientName           string
	MediaID              int64
	MediaName            string
	MediaType            string
	MediaDurationSeconds int

	// Scheduling
	Mode ScheduleMode

	// fixed mode: exact interval within the slot
	StartTime *types.TimeString
	EndTime   *types.TimeString

	// random_frequency mode: window plus total play-time budget
	WindowStart      *types.TimeString
	WindowEnd        *types.TimeString
	TotalPlaySeconds *int

	// Priority affects playback precedence only, never capacity (1..10)
	Priority int

	Status BookingStatus

	ProofOfPlay ProofOfPlay

	RecallReason *string
	RecalledAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// validTransitions enumerates the booking state machine:
// scheduled -> playing -> completed, and scheduled|playing -> recalled.
// completed and recalled are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusScheduled: {StatusPlaying, StatusRecalled},
	StatusPlaying:   {StatusCompleted, StatusRecalled},
	StatusCompleted: {},
	StatusRecalled:  {},
}

// CanTransitionTo reports whether moving to next is a valid transition
func (b *SlotBooking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the booking is in a terminal state
func (b *SlotBooking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusRecalled
}

// IsRecalled returns true if the booking has been recalled
func (b *SlotBooking) IsRecalled() bool {
	return b.Status == StatusRecalled
}

// CanBeRecalled reports whether a recall request is acceptable for this
// booking. Recall from scheduled or playing performs the transition; recall
// of an already recalled booking is an idempotent no-op. Only completed
// bookings reject recall.
func (b *SlotBooking) CanBeRecalled() bool {
	return b.Status != StatusCompleted
}

// CountsForCapacity reports whether this booking consumes slot capacity.
// Every non-recalled booking counts, including completed ones: the slot's
// time was spent either way.
func (b *SlotBooking) CountsForCapacity() bool {
	return b.Status != StatusRecalled
}

// ConsumedSeconds returns the slot time this booking consumes.
// Fixed mode consumes its exact interval; random-frequency mode consumes its
// total play-time budget regardless of window width. Recalled bookings
// consume nothing.
func (b *SlotBooking) ConsumedSeconds() int {
	if !b.CountsForCapacity() {
		return 0
	}

	switch b.Mode {
	case ModeFixed:
		if b.StartTime == nil || b.EndTime == nil {
			return 0
		}
		minutes, err := b.StartTime.MinutesUntil(*b.EndTime)
		if err != nil || minutes < 0 {
			return 0
		}
		return minutes * 60
	case ModeRandomFrequency:
		if b.TotalPlaySeconds == nil {
			return 0
		}
		return *b.TotalPlaySeconds
	default:
		return 0
	}
}

// KioskBookingsFilter фильтр для выборки бронирований киоска
type KioskBookingsFilter struct {
	KioskID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeRecalled bool           // Включать ли отозванные бронирования
}
