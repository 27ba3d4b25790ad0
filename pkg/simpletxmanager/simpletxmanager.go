package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/m04kA/ADS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/ADS-BookingService/pkg/txmanager"
)

// Менеджер транзакций поверх "голого" *sql.DB
// Используется, когда метрики выключены и dbmetrics-обертка не создается

type sqlBeginner struct {
	db *sql.DB
}

// BeginTx адаптирует *sql.DB к интерфейсу txmanager.TxBeginner
func (b sqlBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return b.db.BeginTx(ctx, opts)
}

// NewTransactionManager создает менеджер транзакций над *sql.DB
func NewTransactionManager(db *sql.DB) *txmanager.TransactionManager {
	return txmanager.NewTransactionManager(sqlBeginner{db: db})
}
