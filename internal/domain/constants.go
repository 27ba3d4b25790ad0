package domain

// Default configuration values
const (
	DefaultSlotDurationSeconds = 3600
	DefaultPriority            = 5

	DefaultPeakBasePrice    = 150.0
	DefaultNonPeakBasePrice = 75.0
)

// Business validation constants
const (
	MinSlotDurationSeconds = 300   // 5 minutes
	MaxSlotDurationSeconds = 14400 // 4 hours

	MinPriority = 1
	MaxPriority = 10

	MaxGridRangeDays = 31

	MaxRecallBatchSize    = 100
	MaxRecallReasonLength = 500
	MaxMediaNameLength    = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CapacityCountingStatuses список статусов, учитываемых при подсчете
// занятости слота
var CapacityCountingStatuses = []BookingStatus{
	StatusScheduled,
	StatusPlaying,
	StatusCompleted,
}

// RecallableStatuses список статусов, из которых допустим отзыв
// (recalled включен: повторный отзыв является no-op)
var RecallableStatuses = []BookingStatus{
	StatusScheduled,
	StatusPlaying,
	StatusRecalled,
}
