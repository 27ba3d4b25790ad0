package outbox

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	"github.com/m04kA/ADS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/ADS-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var notificationColumns = []string{
	"id",
	"command_id",
	"batch_id",
	"booking_id",
	"kiosk_id",
	"media_id",
	"status",
	"attempts",
	"last_error",
	"created_at",
	"delivered_at",
}

// Repository репозиторий transactional outbox для команд stop-playback
// Записи создаются в той же транзакции, что и отзыв бронирований, поэтому
// состояние ledger и очередь уведомлений не могут разойтись
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория outbox
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Enqueue добавляет записи в outbox
// Вызывается внутри транзакции отзыва (через контекст)
func (r *Repository) Enqueue(ctx context.Context, notifications []*domain.RecallNotification) error {
	if len(notifications) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("recall_outbox").
		Columns(
			"command_id",
			"batch_id",
			"booking_id",
			"kiosk_id",
			"media_id",
			"status",
		)

	for _, n := range notifications {
		insertBuilder = insertBuilder.Values(
			n.CommandID,
			n.BatchID,
			n.BookingID,
			n.KioskID,
			n.MediaID,
			domain.NotificationPending,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Enqueue - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Enqueue - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ClaimPending выбирает до limit ожидающих записей для доставки
// FOR UPDATE SKIP LOCKED позволяет нескольким экземплярам диспетчера
// работать с очередью без конфликтов
func (r *Repository) ClaimPending(ctx context.Context, limit uint64) ([]*domain.RecallNotification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(notificationColumns...).
		From("recall_outbox").
		Where(squirrel.Eq{"status": domain.NotificationPending}).
		OrderBy("id ASC").
		Limit(limit)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE SKIP LOCKED")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ClaimPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ClaimPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	notifications := make([]*domain.RecallNotification, 0)
	for rows.Next() {
		var n domain.RecallNotification
		var createdAt sql.NullTime

		err := rows.Scan(
			&n.ID,
			&n.CommandID,
			&n.BatchID,
			&n.BookingID,
			&n.KioskID,
			&n.MediaID,
			&n.Status,
			&n.Attempts,
			&n.LastError,
			&createdAt,
			&n.DeliveredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ClaimPending - scan row: %v", ErrScanRow, err)
		}

		n.CreatedAt = createdAt.Time
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ClaimPending - rows error: %v", ErrScanRow, err)
	}

	return notifications, nil
}

// MarkDelivered помечает запись доставленной
func (r *Repository) MarkDelivered(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("recall_outbox").
		Set("status", domain.NotificationDelivered).
		Set("delivered_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkDelivered - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkDelivered - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkDelivered - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// MarkAttemptFailed фиксирует неудачную попытку доставки
// Когда попытки исчерпаны (final), запись переводится в статус failed и
// больше не выбирается диспетчером; иначе остается pending для повтора
func (r *Repository) MarkAttemptFailed(ctx context.Context, id int64, attempts int, lastError string, final bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	status := domain.NotificationPending
	if final {
		status = domain.NotificationFailed
	}

	query, args, err := psqlbuilder.Update("recall_outbox").
		Set("status", status).
		Set("attempts", attempts).
		Set("last_error", lastError).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkAttemptFailed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkAttemptFailed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkAttemptFailed - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// CountPending возвращает число ожидающих записей (для метрик)
func (r *Repository) CountPending(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("recall_outbox").
		Where(squirrel.Eq{"status": domain.NotificationPending}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountPending - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountPending - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}
