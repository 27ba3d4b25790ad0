package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	kioskClient "github.com/m04kA/ADS-BookingService/internal/integrations/kioskservice"
	mediaClient "github.com/m04kA/ADS-BookingService/internal/integrations/mediaservice"
)

// UseCase use case для создания бронирования слота
// Использует сериализуемую транзакцию: проверка занятости слота и вставка
// выполняются атомарно, два оператора не могут потерять обновления друг друга
type UseCase struct {
	bookingRepo  BookingRepository
	kioskClient  KioskServiceClient
	mediaClient  MediaServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	kioskClient KioskServiceClient,
	mediaClient MediaServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		kioskClient:  kioskClient,
		mediaClient:  mediaClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// Значения по умолчанию
	if req.SlotDurationSeconds == 0 {
		req.SlotDurationSeconds = domain.DefaultSlotDurationSeconds
	}
	if req.Priority == 0 {
		req.Priority = domain.DefaultPriority
	}

	uc.logger.Info("CreateBooking: kiosk=%d, client=%d, media=%d, date=%s, slot=%s, mode=%s",
		req.KioskID, req.ClientID, req.MediaID, req.Date.Format(domain.DateFormat), req.SlotStart, req.Mode)

	// 1. Структурная валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	if err := validateSlotDuration(req.SlotDurationSeconds); err != nil {
		uc.logger.Warn("CreateBooking: invalid slot duration: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: date is in the past", ErrValidation)
	}

	// 3. Получаем киоск; бронировать можно только работающий киоск
	kiosk, err := uc.kioskClient.GetKiosk(ctx, req.KioskID)
	if err != nil {
		if errors.Is(err, kioskClient.ErrKioskNotFound) {
			uc.logger.Warn("CreateBooking: kiosk id=%d not found", req.KioskID)
			return nil, ErrKioskNotFound
		}
		uc.logger.Error("CreateBooking: failed to get kiosk id=%d: %v", req.KioskID, err)
		return nil, fmt.Errorf("%w: failed to get kiosk: %v", ErrInternal, err)
	}
	if !kiosk.IsOnline() {
		uc.logger.Warn("CreateBooking: kiosk id=%d is %s", req.KioskID, kiosk.Status)
		return nil, ErrKioskNotOnline
	}

	// 4. Проверяем, что слот попадает в операционную сетку киоска
	workingHours := getWorkingHoursForDay(kiosk, req.Date)
	slotEnd, err := validateSlotAligned(workingHours, req.SlotStart, req.SlotDurationSeconds)
	if err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return nil, err
	}

	// 5. Валидация тайминга режима в границах слота
	if err := validateTiming(req, slotEnd); err != nil {
		uc.logger.Warn("CreateBooking: timing validation failed: %v", err)
		return nil, err
	}

	// 6. Получаем клиента и медиа из каталога
	advertiser, err := uc.mediaClient.GetAdvertiser(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, mediaClient.ErrClientNotFound) {
			uc.logger.Warn("CreateBooking: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	media, err := uc.mediaClient.GetMedia(ctx, req.MediaID)
	if err != nil {
		if errors.Is(err, mediaClient.ErrMediaNotFound) {
			uc.logger.Warn("CreateBooking: media id=%d not found", req.MediaID)
			return nil, ErrMediaNotFound
		}
		uc.logger.Error("CreateBooking: failed to get media id=%d: %v", req.MediaID, err)
		return nil, fmt.Errorf("%w: failed to get media: %v", ErrInternal, err)
	}
	if media.ClientID != advertiser.ID {
		uc.logger.Warn("CreateBooking: media id=%d belongs to client id=%d, not %d",
			req.MediaID, media.ClientID, req.ClientID)
		return nil, ErrMediaOwnership
	}

	// Переменные для результата
	var result *domain.SlotBooking
	var slotConsumed int
	var overbooked bool

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Читаем бронирования слота с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.GetBySlotRange(txCtx, req.KioskID, req.Date, req.SlotStart, slotEnd)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get slot bookings: %v", err)
			return fmt.Errorf("%w: failed to get slot bookings: %v", ErrInternal, err)
		}

		booking := &domain.SlotBooking{
			KioskID:              req.KioskID,
			SlotDate:             req.Date,
			SlotStart:            req.SlotStart,
			SlotDurationSeconds:  req.SlotDurationSeconds,
			ClientID:             advertiser.ID,
			ClientName:           advertiser.Name,
			MediaID:              media.ID,
			MediaName:            media.Name,
			MediaType:            media.Type,
			MediaDurationSeconds: media.DurationSeconds,
			Mode:                 req.Mode,
			StartTime:            req.StartTime,
			EndTime:              req.EndTime,
			WindowStart:          req.WindowStart,
			WindowEnd:            req.WindowEnd,
			TotalPlaySeconds:     req.TotalPlaySeconds,
			Priority:             req.Priority,
			Status:               domain.StatusScheduled,
		}

		// 7.2. Считаем занятость слота после добавления бронирования
		// Перебронирование допускается: слот может быть продан сверх емкости
		// (make-good размещения), но операторы должны это видеть
		slotConsumed = booking.ConsumedSeconds()
		for _, b := range existing {
			slotConsumed += b.ConsumedSeconds()
		}
		overbooked = slotConsumed > req.SlotDurationSeconds

		if overbooked {
			uc.logger.Warn("CreateBooking: slot %d:%s:%s overbooked, consumed=%ds capacity=%ds",
				req.KioskID, req.Date.Format(domain.DateFormat), req.SlotStart,
				slotConsumed, req.SlotDurationSeconds)
		}

		// 7.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d for kiosk=%d slot=%s",
		result.ID, req.KioskID, req.SlotStart)

	occupancy := float64(slotConsumed) / float64(req.SlotDurationSeconds) * 100
	if occupancy > 100 {
		occupancy = 100
	}

	return &Response{
		ID:                   result.ID,
		KioskID:              result.KioskID,
		Date:                 result.SlotDate,
		SlotStart:            result.SlotStart,
		SlotDurationSeconds:  result.SlotDurationSeconds,
		ClientID:             result.ClientID,
		ClientName:           result.ClientName,
		MediaID:              result.MediaID,
		MediaName:            result.MediaName,
		MediaType:            result.MediaType,
		Mode:                 result.Mode,
		StartTime:            result.StartTime,
		EndTime:              result.EndTime,
		WindowStart:          result.WindowStart,
		WindowEnd:            result.WindowEnd,
		TotalPlaySeconds:     result.TotalPlaySeconds,
		Priority:             result.Priority,
		Status:               string(result.Status),
		SlotConsumedSeconds:  slotConsumed,
		SlotOccupancyPercent: occupancy,
		Overbooked:           overbooked,
		CreatedAt:            result.CreatedAt,
		UpdatedAt:            result.UpdatedAt,
	}, nil
}
