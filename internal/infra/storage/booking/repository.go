package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	"github.com/m04kA/ADS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/ADS-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/ADS-BookingService/pkg/types"
)

// Колонки таблицы slot_bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"kiosk_id",
	"slot_date",
	"slot_start",
	"slot_duration_seconds",
	"client_id",
	"client_name",
	"media_id",
	"media_name",
	"media_type",
	"media_duration_seconds",
	"mode",
	"start_time",
	"end_time",
	"window_start",
	"window_end",
	"total_play_seconds",
	"priority",
	"status",
	"actual_play_seconds",
	"impressions",
	"attentiveness_percent",
	"recall_reason",
	"recalled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value),
// использует её: создание с проверкой занятости слота выполняется в
// сериализуемой транзакции для предотвращения гонки данных
func (r *Repository) Create(ctx context.Context, b *domain.SlotBooking) (*domain.SlotBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_bookings").
		Columns(
			"kiosk_id",
			"slot_date",
			"slot_start",
			"slot_duration_seconds",
			"client_id",
			"client_name",
			"media_id",
			"media_name",
			"media_type",
			"media_duration_seconds",
			"mode",
			"start_time",
			"end_time",
			"window_start",
			"window_end",
			"total_play_seconds",
			"priority",
			"status",
		).
		Values(
			b.KioskID,
			b.SlotDate,
			b.SlotStart,
			b.SlotDurationSeconds,
			b.ClientID,
			b.ClientName,
			b.MediaID,
			b.MediaName,
			b.MediaType,
			b.MediaDurationSeconds,
			b.Mode,
			timePtrValue(b.StartTime),
			timePtrValue(b.EndTime),
			timePtrValue(b.WindowStart),
			timePtrValue(b.WindowEnd),
			b.TotalPlaySeconds,
			b.Priority,
			b.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SlotBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("slot_bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByIDs получает бронирования по списку ID
// Внутри транзакции строки блокируются (FOR UPDATE), это используется
// пакетным отзывом для атомарной проверки и перевода статусов
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.SlotBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("slot_bookings").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByKioskWithFilter получает бронирования киоска с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отозванных
// бронирований. Для конкретной даты внутри транзакции строки блокируются
// (FOR UPDATE), так создание бронирования сериализуется по слоту
func (r *Repository) GetByKioskWithFilter(ctx context.Context, filter domain.KioskBookingsFilter) ([]*domain.SlotBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("slot_bookings").
		Where(squirrel.Eq{"kiosk_id": filter.KioskID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"slot_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeRecalled {
		// Если не указан конкретный статус и отозванные не нужны - исключаем их
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusRecalled)})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	// Для конкретной даты сортируем по началу слота, для периода - сначала новые
	if singleDate {
		selectBuilder = selectBuilder.OrderBy("slot_start ASC, id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("slot_date DESC, slot_start DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKioskWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKioskWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBySlotRange получает бронирования киоска на дату, чьи слоты начинаются
// в интервале [from, to). Используется проверкой занятости при создании
// бронирования; внутри транзакции строки блокируются
func (r *Repository) GetBySlotRange(ctx context.Context, kioskID int64, date time.Time, from, to types.TimeString) ([]*domain.SlotBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("slot_bookings").
		Where(squirrel.Eq{"kiosk_id": kioskID}).
		Where(squirrel.Eq{"slot_date": date}).
		Where(squirrel.GtOrEq{"slot_start": from}).
		Where(squirrel.Lt{"slot_start": to}).
		Where(squirrel.NotEq{"status": string(domain.StatusRecalled)}).
		OrderBy("slot_start ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlotRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlotRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
// Валидация допустимости перехода выполняется на уровне сервиса
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Recall переводит бронирование в статус recalled с указанием причины
func (r *Repository) Recall(ctx context.Context, id int64, reason string) error {
	affected, err := r.recall(ctx, []int64{id}, reason)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// RecallBatch переводит набор бронирований в статус recalled одной командой
// Отзываются только строки в statuses scheduled/playing; уже отозванные и
// завершенные строки не затрагиваются. Возвращает число измененных строк
func (r *Repository) RecallBatch(ctx context.Context, ids []int64, reason string) (int64, error) {
	return r.recall(ctx, ids, reason)
}

func (r *Repository) recall(ctx context.Context, ids []int64, reason string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_bookings").
		Set("status", domain.StatusRecalled).
		Set("recall_reason", reason).
		Set("recalled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"status": []string{
			string(domain.StatusScheduled),
			string(domain.StatusPlaying),
		}}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: recall - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: recall - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: recall - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// UpdateProofOfPlay записывает телеметрию проигрывания в бронирование
func (r *Repository) UpdateProofOfPlay(ctx context.Context, id int64, pop domain.ProofOfPlay) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("slot_bookings").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if pop.ActualPlaySeconds != nil {
		updateBuilder = updateBuilder.Set("actual_play_seconds", *pop.ActualPlaySeconds)
	}
	if pop.Impressions != nil {
		updateBuilder = updateBuilder.Set("impressions", *pop.Impressions)
	}
	if pop.AttentivenessPercent != nil {
		updateBuilder = updateBuilder.Set("attentiveness_percent", *pop.AttentivenessPercent)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateProofOfPlay - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateProofOfPlay - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateProofOfPlay - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// timePtrValue конвертирует *TimeString в значение для вставки (NULL при nil)
func timePtrValue(t *types.TimeString) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

// scanBooking сканирует одну строку в доменную модель
func scanBooking(scan func(dest ...interface{}) error) (*domain.SlotBooking, error) {
	var b domain.SlotBooking
	var startTime, endTime, windowStart, windowEnd types.TimeString
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&b.ID,
		&b.KioskID,
		&b.SlotDate,
		&b.SlotStart,
		&b.SlotDurationSeconds,
		&b.ClientID,
		&b.ClientName,
		&b.MediaID,
		&b.MediaName,
		&b.MediaType,
		&b.MediaDurationSeconds,
		&b.Mode,
		&startTime,
		&endTime,
		&windowStart,
		&windowEnd,
		&b.TotalPlaySeconds,
		&b.Priority,
		&b.Status,
		&b.ProofOfPlay.ActualPlaySeconds,
		&b.ProofOfPlay.Impressions,
		&b.ProofOfPlay.AttentivenessPercent,
		&b.RecallReason,
		&b.RecalledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if !startTime.IsZero() {
		b.StartTime = &startTime
	}
	if !endTime.IsZero() {
		b.EndTime = &endTime
	}
	if !windowStart.IsZero() {
		b.WindowStart = &windowStart
	}
	if !windowEnd.IsZero() {
		b.WindowEnd = &windowEnd
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.SlotBooking, error) {
	bookings := make([]*domain.SlotBooking, 0)

	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
