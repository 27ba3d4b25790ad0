package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/ADS-BookingService/internal/config"
	"github.com/m04kA/ADS-BookingService/internal/domain"
	"github.com/m04kA/ADS-BookingService/pkg/metrics"
)

// Dispatcher доставляет команды остановки из outbox в командные топики киосков
//
// Каждый воркер забирает свою пачку записей в транзакции: FOR UPDATE SKIP
// LOCKED исключает пересечение пачек между воркерами. Публикация и отметка
// результата выполняются в той же транзакции, откат возвращает записи
// в очередь. Доставка at-least-once, устройства дедуплицируют по commandId
type Dispatcher struct {
	outboxRepo OutboxRepository
	publisher  DevicePublisher
	txManager  TransactionManager
	metrics    *metrics.Metrics // может быть nil, если метрики выключены
	logger     Logger

	workers      int
	maxAttempts  int
	retryDelay   time.Duration
	pollInterval time.Duration
	batchSize    uint64

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New создает новый диспетчер команд остановки
func New(
	cfg config.NotifierConfig,
	outboxRepo OutboxRepository,
	publisher DevicePublisher,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger Logger,
) *Dispatcher {
	return &Dispatcher{
		outboxRepo:   outboxRepo,
		publisher:    publisher,
		txManager:    txManager,
		metrics:      m,
		logger:       logger,
		workers:      cfg.Workers,
		maxAttempts:  cfg.MaxAttempts,
		retryDelay:   time.Duration(cfg.RetryDelaySeconds) * time.Second,
		pollInterval: time.Duration(cfg.PollIntervalSeconds) * time.Second,
		batchSize:    uint64(cfg.BatchSize),
		stopCh:       make(chan struct{}),
	}
}

// Start запускает воркеры доставки и наблюдатель глубины очереди
func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Info("Notifier: starting %d workers, poll=%s, batch=%d, maxAttempts=%d",
		d.workers, d.pollInterval, d.batchSize, d.maxAttempts)

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}

	d.wg.Add(1)
	go d.observeQueueDepth(ctx)
}

// Stop останавливает диспетчер и дожидается завершения текущих пачек
func (d *Dispatcher) Stop() {
	close(d.stopCh)
	d.wg.Wait()
	d.logger.Info("Notifier: stopped")
}

// worker основной цикл воркера доставки
func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()

	for {
		select {
		case <-d.stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}

		delivered, failed, err := d.processBatch(ctx)
		if err != nil {
			d.logger.Error("Notifier: worker %d batch failed: %v", id, err)
			d.sleep(d.retryDelay)
			continue
		}

		switch {
		case delivered == 0 && failed == 0:
			// Очередь пуста
			d.sleep(d.pollInterval)
		case failed > 0:
			// Неудачные записи остались в pending, даем брокеру передышку
			d.sleep(d.retryDelay)
		}
	}
}

// processBatch забирает и доставляет одну пачку записей
func (d *Dispatcher) processBatch(ctx context.Context) (delivered, failed int, err error) {
	err = d.txManager.Do(ctx, func(txCtx context.Context) error {
		notifications, err := d.outboxRepo.ClaimPending(txCtx, d.batchSize)
		if err != nil {
			return err
		}

		for _, n := range notifications {
			if err := d.deliver(txCtx, n); err != nil {
				return err
			}
			if n.Status == domain.NotificationDelivered {
				delivered++
			} else {
				failed++
			}
		}

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return delivered, failed, nil
}

// deliver публикует одну команду и фиксирует результат попытки
func (d *Dispatcher) deliver(ctx context.Context, n *domain.RecallNotification) error {
	pubErr := d.publisher.PublishStop(n)
	if pubErr == nil {
		if err := d.outboxRepo.MarkDelivered(ctx, n.ID); err != nil {
			return err
		}
		n.Status = domain.NotificationDelivered
		d.observeDelivery("delivered")
		d.logger.Info("Notifier: delivered stop command %s for booking=%d to kiosk=%d",
			n.CommandID, n.BookingID, n.KioskID)
		return nil
	}

	attempts := n.Attempts + 1
	final := attempts >= d.maxAttempts

	if err := d.outboxRepo.MarkAttemptFailed(ctx, n.ID, attempts, pubErr.Error(), final); err != nil {
		return err
	}

	if final {
		n.Status = domain.NotificationFailed
		d.observeDelivery("failed")
		d.logger.Error("Notifier: giving up on command %s for booking=%d after %d attempts: %v",
			n.CommandID, n.BookingID, attempts, pubErr)
	} else {
		n.Status = domain.NotificationPending
		d.observeDelivery("retry")
		d.logger.Warn("Notifier: attempt %d/%d failed for command %s: %v",
			attempts, d.maxAttempts, n.CommandID, pubErr)
	}

	return nil
}

// observeQueueDepth периодически публикует глубину очереди в метрики
func (d *Dispatcher) observeQueueDepth(ctx context.Context) {
	defer d.wg.Done()

	if d.metrics == nil {
		return
	}

	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := d.outboxRepo.CountPending(ctx)
			if err != nil {
				d.logger.Warn("Notifier: failed to count pending notifications: %v", err)
				continue
			}
			d.metrics.NotifierQueueDepth.Set(float64(count))
		}
	}
}

func (d *Dispatcher) observeDelivery(status string) {
	if d.metrics == nil {
		return
	}
	d.metrics.NotifierDeliveriesTotal.WithLabelValues(status).Inc()
}

// sleep ждет указанное время или остановку диспетчера
func (d *Dispatcher) sleep(dur time.Duration) {
	timer := time.NewTimer(dur)
	defer timer.Stop()

	select {
	case <-d.stopCh:
	case <-timer.C:
	}
}
