package get_slot_grid

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	kioskClient "github.com/m04kA/ADS-BookingService/internal/integrations/kioskservice"
)

// UseCase use case построения сетки слотов киоска за диапазон дат
// Сетка детерминированная: слоты не хранятся, а каждый раз выводятся из
// операционного календаря киоска и набора бронирований
type UseCase struct {
	bookingRepo BookingRepository
	kioskClient KioskServiceClient
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	kioskClient KioskServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		kioskClient: kioskClient,
		logger:      logger,
	}
}

// Execute выполняет use case построения сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// Длительность по умолчанию, если не передана
	if req.SlotDurationSeconds == 0 {
		req.SlotDurationSeconds = domain.DefaultSlotDurationSeconds
	}

	uc.logger.Info("GetSlotGrid: kiosk=%d, from=%s, to=%s, slotDuration=%ds",
		req.KioskID, req.FromDate.Format(domain.DateFormat), req.ToDate.Format(domain.DateFormat), req.SlotDurationSeconds)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlotGrid: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем киоск из реестра
	kiosk, err := uc.kioskClient.GetKiosk(ctx, req.KioskID)
	if err != nil {
		if errors.Is(err, kioskClient.ErrKioskNotFound) {
			uc.logger.Warn("GetSlotGrid: kiosk id=%d not found", req.KioskID)
			return nil, ErrKioskNotFound
		}
		uc.logger.Error("GetSlotGrid: failed to get kiosk id=%d: %v", req.KioskID, err)
		return nil, fmt.Errorf("%w: failed to get kiosk: %v", ErrInternal, err)
	}

	// 3. Парсим пиковые окна и цены тарифов
	peakWindows, err := parsePeakWindows(kiosk)
	if err != nil {
		uc.logger.Error("GetSlotGrid: malformed peak windows for kiosk id=%d: %v", req.KioskID, err)
		return nil, fmt.Errorf("%w: malformed peak windows: %v", ErrInternal, err)
	}
	prices := tierPrices(kiosk)

	// 4. Получаем все неотозванные бронирования киоска за период одним запросом
	filter := domain.KioskBookingsFilter{
		KioskID:         req.KioskID,
		StartDate:       &req.FromDate,
		EndDate:         &req.ToDate,
		IncludeRecalled: false,
	}

	bookings, err := uc.bookingRepo.GetByKioskWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetSlotGrid: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Генерируем слоты по каждому дню диапазона
	slots := make([]*domain.TimeSlot, 0)
	for date := req.FromDate; !date.After(req.ToDate); date = date.AddDate(0, 0, 1) {
		workingHours := getWorkingHoursForDay(kiosk, date)

		starts, err := generateDaySlots(workingHours, req.SlotDurationSeconds)
		if err != nil {
			uc.logger.Error("GetSlotGrid: failed to generate slots for %s: %v", date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		slots = append(slots, buildDaySlots(req.KioskID, date, starts, req.SlotDurationSeconds, peakWindows, prices)...)
	}

	// 6. Прикрепляем бронирования к слотам
	attachBookings(slots, bookings)

	uc.logger.Info("GetSlotGrid: generated %d slots with %d bookings for kiosk=%d",
		len(slots), len(bookings), req.KioskID)

	return &Response{
		KioskID:             req.KioskID,
		KioskName:           kiosk.Name,
		FromDate:            req.FromDate,
		ToDate:              req.ToDate,
		SlotDurationSeconds: req.SlotDurationSeconds,
		Slots:               slots,
	}, nil
}
