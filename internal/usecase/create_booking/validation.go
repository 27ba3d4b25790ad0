package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	"github.com/m04kA/ADS-BookingService/internal/integrations/kioskservice"
	"github.com/m04kA/ADS-BookingService/pkg/types"
)

// validateRequest валидирует структурную корректность запроса
// Ошибки здесь не фиксируют никакого состояния: бронирование либо создается
// целиком, либо отклоняется целиком
func validateRequest(req *Request) error {
	if req.KioskID <= 0 {
		return fmt.Errorf("%w: kioskID must be positive", ErrValidation)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID is required", ErrValidation)
	}

	if req.MediaID <= 0 {
		return fmt.Errorf("%w: mediaID is required", ErrValidation)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}

	if req.SlotStart.IsZero() {
		return fmt.Errorf("%w: slotStart is required", ErrValidation)
	}
	if err := req.SlotStart.Validate(); err != nil {
		return fmt.Errorf("%w: invalid slotStart: %v", ErrValidation, err)
	}

	if req.Priority != 0 && (req.Priority < domain.MinPriority || req.Priority > domain.MaxPriority) {
		return fmt.Errorf("%w: priority must be in [%d, %d]", ErrValidation, domain.MinPriority, domain.MaxPriority)
	}

	switch req.Mode {
	case domain.ModeFixed, domain.ModeRandomFrequency:
		return nil
	default:
		return fmt.Errorf("%w: unknown scheduling mode %q", ErrValidation, req.Mode)
	}
}

// validateSlotDuration проверяет длительность слота: границы и кратность минуте
func validateSlotDuration(slotDurationSeconds int) error {
	if slotDurationSeconds < domain.MinSlotDurationSeconds || slotDurationSeconds > domain.MaxSlotDurationSeconds {
		return fmt.Errorf("%w: slotDurationSeconds must be in [%d, %d]",
			ErrValidation, domain.MinSlotDurationSeconds, domain.MaxSlotDurationSeconds)
	}
	if slotDurationSeconds%60 != 0 {
		return fmt.Errorf("%w: slotDurationSeconds must be a whole number of minutes", ErrValidation)
	}
	return nil
}

// validateTiming проверяет тайминг режима в границах слота [slotStart, slotEnd]
func validateTiming(req *Request, slotEnd types.TimeString) error {
	switch req.Mode {
	case domain.ModeFixed:
		return validateFixedTiming(req, slotEnd)
	case domain.ModeRandomFrequency:
		return validateRandomFrequencyTiming(req, slotEnd)
	default:
		return fmt.Errorf("%w: unknown scheduling mode %q", ErrValidation, req.Mode)
	}
}

// validateFixedTiming проверяет тайминг fixed-бронирования:
// start < end, оба в границах слота
func validateFixedTiming(req *Request, slotEnd types.TimeString) error {
	if req.StartTime == nil || req.EndTime == nil {
		return fmt.Errorf("%w: fixed mode requires startTime and endTime", ErrValidation)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrValidation, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrValidation, err)
	}

	if !req.StartTime.IsBefore(*req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrValidation)
	}

	if req.StartTime.IsBefore(req.SlotStart) || req.EndTime.IsAfter(slotEnd) {
		return fmt.Errorf("%w: fixed interval must lie within the slot bounds", ErrValidation)
	}

	return nil
}

// validateRandomFrequencyTiming проверяет тайминг random_frequency-бронирования:
// windowStart <= windowEnd, бюджет > 0 и не шире окна, окно в границах слота
func validateRandomFrequencyTiming(req *Request, slotEnd types.TimeString) error {
	if req.WindowStart == nil || req.WindowEnd == nil || req.TotalPlaySeconds == nil {
		return fmt.Errorf("%w: random_frequency mode requires windowStart, windowEnd and totalPlaySeconds", ErrValidation)
	}
	if err := req.WindowStart.Validate(); err != nil {
		return fmt.Errorf("%w: invalid windowStart: %v", ErrValidation, err)
	}
	if err := req.WindowEnd.Validate(); err != nil {
		return fmt.Errorf("%w: invalid windowEnd: %v", ErrValidation, err)
	}

	if req.WindowStart.IsAfter(*req.WindowEnd) {
		return fmt.Errorf("%w: windowStart must not be after windowEnd", ErrValidation)
	}

	if *req.TotalPlaySeconds <= 0 {
		return fmt.Errorf("%w: totalPlaySeconds must be positive", ErrValidation)
	}

	windowMinutes, err := req.WindowStart.MinutesUntil(*req.WindowEnd)
	if err != nil {
		return fmt.Errorf("%w: malformed window: %v", ErrValidation, err)
	}
	if *req.TotalPlaySeconds > windowMinutes*60 {
		return fmt.Errorf("%w: totalPlaySeconds %d exceeds window span %ds",
			ErrValidation, *req.TotalPlaySeconds, windowMinutes*60)
	}

	if req.WindowStart.IsBefore(req.SlotStart) || req.WindowEnd.IsAfter(slotEnd) {
		return fmt.Errorf("%w: window must lie within the slot bounds", ErrValidation)
	}

	return nil
}

// validateSlotAligned проверяет, что слот попадает в операционную сетку:
// внутри рабочих часов и на границе, кратной длительности слота
func validateSlotAligned(workingHours kioskservice.DaySchedule, slotStart types.TimeString, slotDurationSeconds int) (types.TimeString, error) {
	if !workingHours.IsOpen || workingHours.OpenTime == nil || workingHours.CloseTime == nil {
		return "", ErrKioskClosed
	}

	openTime, err := types.NewTimeStringFromString(*workingHours.OpenTime)
	if err != nil {
		return "", fmt.Errorf("%w: malformed open time: %v", ErrInternal, err)
	}
	closeTime, err := types.NewTimeStringFromString(*workingHours.CloseTime)
	if err != nil {
		return "", fmt.Errorf("%w: malformed close time: %v", ErrInternal, err)
	}

	offset, err := openTime.MinutesUntil(slotStart)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	slotMinutes := slotDurationSeconds / 60

	if offset < 0 || offset%slotMinutes != 0 {
		return "", fmt.Errorf("%w: slotStart %s is not on a slot boundary", ErrInvalidSlot, slotStart)
	}

	slotEnd, err := slotStart.AddMinutes(slotMinutes)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	if slotEnd.IsAfter(closeTime) {
		return "", fmt.Errorf("%w: slot %s-%s ends after closing time %s", ErrInvalidSlot, slotStart, slotEnd, closeTime)
	}

	return slotEnd, nil
}

// getWorkingHoursForDay возвращает расписание работы киоска на день недели
func getWorkingHoursForDay(kiosk *kioskservice.Kiosk, date time.Time) kioskservice.DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return kiosk.WorkingHours.Monday
	case time.Tuesday:
		return kiosk.WorkingHours.Tuesday
	case time.Wednesday:
		return kiosk.WorkingHours.Wednesday
	case time.Thursday:
		return kiosk.WorkingHours.Thursday
	case time.Friday:
		return kiosk.WorkingHours.Friday
	case time.Saturday:
		return kiosk.WorkingHours.Saturday
	case time.Sunday:
		return kiosk.WorkingHours.Sunday
	default:
		return kioskservice.DaySchedule{IsOpen: false}
	}
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
