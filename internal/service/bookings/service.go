package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/ADS-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/ADS-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с журналом бронирований
type Service struct {
	bookingRepo BookingRepository
	outboxRepo  OutboxRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		outboxRepo:  outboxRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetKioskBookings получает журнал бронирований киоска с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отозванных бронирований
//
// Примеры использования:
// - Все активные бронирования: GetKioskBookings(ctx, &GetKioskBookingsRequest{KioskID: 123})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Бронирования за период: StartDate и EndDate указывают на разные даты
// - Только воспроизводимые: указать Status = "playing"
// - Включая отозванные: IncludeRecalled = true
func (s *Service) GetKioskBookings(ctx context.Context, req *models.GetKioskBookingsRequest) (*models.BookingListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetKioskBookings: fetching bookings for kiosk=%d", req.KioskID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeRecalled {
		logMsg += ", includeRecalled=true"
	}
	s.logger.Info(logMsg)

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetKioskBookings: invalid filter for kiosk=%d: %v", req.KioskID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем бронирования с фильтрацией
	bookings, err := s.bookingRepo.GetByKioskWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetKioskBookings: repository error for kiosk=%d: %v", req.KioskID, err)
		return nil, fmt.Errorf("%w: GetKioskBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetKioskBookings: successfully fetched %d bookings for kiosk=%d", len(bookings), req.KioskID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование по конвейеру воспроизведения
// Допустимые переходы: scheduled -> playing -> completed
// Отзыв через этот метод запрещен, для него есть отдельные операции
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Переход в recalled выполняется только через операции отзыва:
	// они пишут причину и ставят команду остановки в outbox
	if newStatus == domain.StatusRecalled {
		s.logger.Warn("UpdateStatus: recall of booking id=%d must go through recall operations", bookingID)
		return fmt.Errorf("%w: recall must go through recall operations", ErrInvalidTransition)
	}

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем допустимость перехода
	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: invalid transition %s -> %s for booking id=%d",
			booking.Status, newStatus, bookingID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	// Обновляем статус
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// AttachProofOfPlay прикрепляет телеметрию воспроизведения к бронированию
// Допустимо только для бронирований, которые начали воспроизводиться
func (s *Service) AttachProofOfPlay(ctx context.Context, bookingID int64, req *models.AttachProofOfPlayRequest) error {
	s.logger.Info("AttachProofOfPlay: attaching telemetry to booking id=%d", bookingID)

	if req.ActualPlaySeconds == nil && req.Impressions == nil && req.AttentivenessPercent == nil {
		s.logger.Warn("AttachProofOfPlay: empty telemetry for booking id=%d", bookingID)
		return fmt.Errorf("%w: empty telemetry", ErrInvalidInput)
	}
	if req.ActualPlaySeconds != nil && *req.ActualPlaySeconds < 0 {
		return fmt.Errorf("%w: actualPlaySeconds must be non-negative", ErrInvalidInput)
	}
	if req.Impressions != nil && *req.Impressions < 0 {
		return fmt.Errorf("%w: impressions must be non-negative", ErrInvalidInput)
	}
	if req.AttentivenessPercent != nil && (*req.AttentivenessPercent < 0 || *req.AttentivenessPercent > 100) {
		return fmt.Errorf("%w: attentivenessPercent must be in [0, 100]", ErrInvalidInput)
	}

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("AttachProofOfPlay: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("AttachProofOfPlay: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: AttachProofOfPlay - repository error: %v", ErrInternal, err)
	}

	// Телеметрия приходит от устройства во время или после воспроизведения
	if booking.Status != domain.StatusPlaying && booking.Status != domain.StatusCompleted {
		s.logger.Warn("AttachProofOfPlay: booking id=%d has status=%s", bookingID, booking.Status)
		return ErrProofOfPlayNotAllowed
	}

	if err := s.bookingRepo.UpdateProofOfPlay(ctx, bookingID, req.ToDomainProofOfPlay()); err != nil {
		s.logger.Error("AttachProofOfPlay: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: AttachProofOfPlay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AttachProofOfPlay: successfully attached telemetry to booking id=%d", bookingID)
	return nil
}

// Recall отзывает одно бронирование
// Отзыв уже отозванного бронирования идемпотентен, завершенные не отзываются
// Перевод в recalled и команда остановки пишутся в одной транзакции
func (s *Service) Recall(ctx context.Context, bookingID int64, req *models.RecallBookingRequest) (*models.RecallResponse, error) {
	s.logger.Info("Recall: recalling booking id=%d, reason=%q", bookingID, req.Reason)

	if !req.Confirm {
		s.logger.Warn("Recall: missing confirmation for booking id=%d", bookingID)
		return nil, ErrConfirmationRequired
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxRecallReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxRecallReasonLength)
	}

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Recall: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Recall: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Recall - repository error: %v", ErrInternal, err)
	}

	// Повторный отзыв - no-op
	if booking.IsRecalled() {
		s.logger.Info("Recall: booking id=%d already recalled", bookingID)
		return &models.RecallResponse{
			BookingID:       bookingID,
			Status:          string(domain.StatusRecalled),
			AlreadyRecalled: true,
		}, nil
	}

	if !booking.CanBeRecalled() {
		s.logger.Warn("Recall: booking id=%d is %s, cannot recall", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, domain.StatusRecalled)
	}

	// Отзыв и команда остановки атомарны
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.Recall(txCtx, bookingID, req.Reason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Recall: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Recall - repository error: %v", ErrInternal, err)
		}

		notification := &domain.RecallNotification{
			CommandID: uuid.NewString(),
			BookingID: booking.ID,
			KioskID:   booking.KioskID,
			MediaID:   booking.MediaID,
			Status:    domain.NotificationPending,
		}
		if err := s.outboxRepo.Enqueue(txCtx, []*domain.RecallNotification{notification}); err != nil {
			s.logger.Error("Recall: failed to enqueue stop command for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Recall - failed to enqueue stop command: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Recall: successfully recalled booking id=%d", bookingID)
	return &models.RecallResponse{
		BookingID:       bookingID,
		Status:          string(domain.StatusRecalled),
		AlreadyRecalled: false,
	}, nil
}
