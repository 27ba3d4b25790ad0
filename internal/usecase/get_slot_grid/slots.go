package get_slot_grid

import (
	"time"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	"github.com/m04kA/ADS-BookingService/internal/integrations/kioskservice"
	"github.com/m04kA/ADS-BookingService/pkg/types"
)

// generateDaySlots генерирует времена начала всех слотов операционного дня
// Слоты идут подряд от открытия с фиксированным шагом slotDuration, без
// разрывов и пересечений; слот, не помещающийся до закрытия, отбрасывается.
// Функция чистая: одинаковые входы всегда дают одинаковую сетку
func generateDaySlots(workingHours kioskservice.DaySchedule, slotDurationSeconds int) ([]types.TimeString, error) {
	if !workingHours.IsOpen || workingHours.OpenTime == nil || workingHours.CloseTime == nil {
		return []types.TimeString{}, nil
	}

	openTime, err := types.NewTimeStringFromString(*workingHours.OpenTime)
	if err != nil {
		return nil, err
	}

	closeTime, err := types.NewTimeStringFromString(*workingHours.CloseTime)
	if err != nil {
		return nil, err
	}

	slotMinutes := slotDurationSeconds / 60

	starts := make([]types.TimeString, 0)
	current := openTime

	for current.IsBefore(closeTime) {
		slotEnd, err := current.AddMinutes(slotMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(closeTime) {
			break
		}

		starts = append(starts, current)
		current = slotEnd
	}

	return starts, nil
}

// buildDaySlots строит слоты одного дня с тарифом и ценой
func buildDaySlots(
	kioskID int64,
	date time.Time,
	starts []types.TimeString,
	slotDurationSeconds int,
	peakWindows []domain.TimeWindow,
	prices domain.TierPrices,
) []*domain.TimeSlot {
	slots := make([]*domain.TimeSlot, len(starts))

	for i, start := range starts {
		tier := domain.ResolveTier(peakWindows, start)
		slots[i] = &domain.TimeSlot{
			KioskID:         kioskID,
			Date:            date,
			StartTime:       start,
			DurationSeconds: slotDurationSeconds,
			Tier:            tier,
			BasePrice:       prices.PriceForTier(tier),
			Bookings:        []*domain.SlotBooking{},
		}
	}

	return slots
}

// attachBookings прикрепляет бронирования к слотам по вхождению времени
// начала слота бронирования в интервал [start, end) слота сетки
// Так бронирования, созданные при другой длительности сетки, все равно
// попадают в покрывающий их слот
func attachBookings(slots []*domain.TimeSlot, bookings []*domain.SlotBooking) {
	byDate := make(map[string][]*domain.TimeSlot)
	for _, slot := range slots {
		key := slot.Date.Format(domain.DateFormat)
		byDate[key] = append(byDate[key], slot)
	}

	for _, b := range bookings {
		daySlots, ok := byDate[b.SlotDate.Format(domain.DateFormat)]
		if !ok {
			continue
		}

		for _, slot := range daySlots {
			end, err := slot.EndTime()
			if err != nil {
				continue
			}
			if !b.SlotStart.IsBefore(slot.StartTime) && b.SlotStart.IsBefore(end) {
				slot.Bookings = append(slot.Bookings, b)
				break
			}
		}
	}
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

// parsePeakWindows конвертирует пиковые окна реестра в доменные окна
func parsePeakWindows(kiosk *kioskservice.Kiosk) ([]domain.TimeWindow, error) {
	windows := make([]domain.TimeWindow, 0, len(kiosk.PeakWindows))
	for _, w := range kiosk.PeakWindows {
		start, err := types.NewTimeStringFromString(w.Start)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(w.End)
		if err != nil {
			return nil, err
		}
		windows = append(windows, domain.TimeWindow{Start: start, End: end})
	}
	return windows, nil
}

// tierPrices возвращает цены тарифов киоска с учетом переопределений реестра
func tierPrices(kiosk *kioskservice.Kiosk) domain.TierPrices {
	prices := domain.DefaultTierPrices
	if kiosk.PeakPrice != nil {
		prices.Peak = *kiosk.PeakPrice
	}
	if kiosk.NonPeakPrice != nil {
		prices.NonPeak = *kiosk.NonPeakPrice
	}
	return prices
}
