package recall_bookings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/ADS-BookingService/internal/domain"
)

// UseCase use case пакетного отзыва бронирований
// Отзыв и постановка команд остановки в outbox выполняются в одной
// сериализуемой транзакции: журнал и outbox не могут разойтись
type UseCase struct {
	bookingRepo BookingRepository
	outboxRepo  OutboxRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		outboxRepo:  outboxRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case пакетного отзыва
//
// Пачка атомарна: несуществующее или завершенное бронирование отклоняет
// весь запрос. Уже отозванные бронирования пропускаются (идемпотентность)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RecallBookings: batch of %d bookings, reason=%q", len(req.BookingIDs), req.Reason)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RecallBookings: validation failed: %v", err)
		return nil, err
	}

	batchID := uuid.NewString()
	var recalledIDs, alreadyRecalledIDs []int64

	// 2. Выполняем отзыв в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		recalledIDs = recalledIDs[:0]
		alreadyRecalledIDs = alreadyRecalledIDs[:0]

		// 2.1. Читаем бронирования с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByIDs(txCtx, req.BookingIDs)
		if err != nil {
			uc.logger.Error("RecallBookings: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		byID := make(map[int64]*domain.SlotBooking, len(bookings))
		for _, b := range bookings {
			byID[b.ID] = b
		}

		// 2.2. Проверяем каждое бронирование пачки
		var toRecall []*domain.SlotBooking
		for _, id := range req.BookingIDs {
			b, ok := byID[id]
			if !ok {
				uc.logger.Warn("RecallBookings: booking id=%d not found, rejecting batch", id)
				return fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
			}

			switch {
			case b.IsRecalled():
				alreadyRecalledIDs = append(alreadyRecalledIDs, id)
			case !b.CanBeRecalled():
				uc.logger.Warn("RecallBookings: booking id=%d is %s, rejecting batch", id, b.Status)
				return fmt.Errorf("%w: id=%d", ErrAlreadyCompleted, id)
			default:
				toRecall = append(toRecall, b)
			}
		}

		if len(toRecall) == 0 {
			return nil
		}

		// 2.3. Переводим бронирования в recalled
		ids := make([]int64, 0, len(toRecall))
		for _, b := range toRecall {
			ids = append(ids, b.ID)
		}

		affected, err := uc.bookingRepo.RecallBatch(txCtx, ids, req.Reason)
		if err != nil {
			uc.logger.Error("RecallBookings: failed to recall bookings: %v", err)
			return fmt.Errorf("%w: failed to recall bookings: %v", ErrInternal, err)
		}
		if affected != int64(len(ids)) {
			// Состояние изменилось между чтением и обновлением
			uc.logger.Error("RecallBookings: expected %d updates, got %d", len(ids), affected)
			return fmt.Errorf("%w: concurrent status change detected", ErrInternal)
		}

		// 2.4. Ставим команды остановки в outbox, по одной на бронирование
		notifications := make([]*domain.RecallNotification, 0, len(toRecall))
		for _, b := range toRecall {
			notifications = append(notifications, &domain.RecallNotification{
				CommandID: uuid.NewString(),
				BatchID:   batchID,
				BookingID: b.ID,
				KioskID:   b.KioskID,
				MediaID:   b.MediaID,
				Status:    domain.NotificationPending,
			})
		}

		if err := uc.outboxRepo.Enqueue(txCtx, notifications); err != nil {
			uc.logger.Error("RecallBookings: failed to enqueue stop commands: %v", err)
			return fmt.Errorf("%w: failed to enqueue stop commands: %v", ErrInternal, err)
		}

		recalledIDs = ids
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RecallBookings: batch %s done, recalled=%d, already_recalled=%d",
		batchID, len(recalledIDs), len(alreadyRecalledIDs))

	return &Response{
		BatchID:            batchID,
		RecalledIDs:        recalledIDs,
		AlreadyRecalledIDs: alreadyRecalledIDs,
	}, nil
}
