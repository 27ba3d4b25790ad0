package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ADS-BookingService/internal/config"
	"github.com/m04kA/ADS-BookingService/internal/domain"
)

type mockOutboxRepo struct {
	mu sync.Mutex

	pending   []*domain.RecallNotification
	delivered []int64
	failures  []failedAttempt
}

type failedAttempt struct {
	id       int64
	attempts int
	final    bool
}

func (m *mockOutboxRepo) ClaimPending(ctx context.Context, limit uint64) ([]*domain.RecallNotification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := int(limit)
	if n > len(m.pending) {
		n = len(m.pending)
	}
	batch := m.pending[:n]
	m.pending = m.pending[n:]
	return batch, nil
}

func (m *mockOutboxRepo) MarkDelivered(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delivered = append(m.delivered, id)
	return nil
}

func (m *mockOutboxRepo) MarkAttemptFailed(ctx context.Context, id int64, attempts int, lastError string, final bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, failedAttempt{id: id, attempts: attempts, final: final})
	return nil
}

func (m *mockOutboxRepo) CountPending(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.pending)), nil
}

type mockPublisher struct {
	mu        sync.Mutex
	published []string
	failFor   map[string]error
}

func (m *mockPublisher) PublishStop(n *domain.RecallNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failFor[n.CommandID]; ok {
		return err
	}
	m.published = append(m.published, n.CommandID)
	return nil
}

type mockTxManager struct{}

func (m *mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

func pendingCommand(id int64, commandID string, attempts int) *domain.RecallNotification {
	return &domain.RecallNotification{
		ID:        id,
		CommandID: commandID,
		BookingID: id,
		KioskID:   7,
		MediaID:   100,
		Status:    domain.NotificationPending,
		Attempts:  attempts,
	}
}

func testConfig() config.NotifierConfig {
	return config.NotifierConfig{
		Workers:             1,
		MaxAttempts:         3,
		RetryDelaySeconds:   1,
		PollIntervalSeconds: 1,
		BatchSize:           10,
	}
}

func newTestDispatcher(repo *mockOutboxRepo, pub *mockPublisher) *Dispatcher {
	return New(testConfig(), repo, pub, &mockTxManager{}, nil, &nopLogger{})
}

func TestDispatcher_ProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers pending commands and marks them", func(t *testing.T) {
		repo := &mockOutboxRepo{
			pending: []*domain.RecallNotification{
				pendingCommand(1, "cmd-1", 0),
				pendingCommand(2, "cmd-2", 0),
			},
		}
		pub := &mockPublisher{}
		d := newTestDispatcher(repo, pub)

		delivered, failed, err := d.processBatch(ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, delivered)
		assert.Zero(t, failed)
		assert.Equal(t, []string{"cmd-1", "cmd-2"}, pub.published)
		assert.Equal(t, []int64{1, 2}, repo.delivered)
	})

	t.Run("empty queue yields empty batch", func(t *testing.T) {
		d := newTestDispatcher(&mockOutboxRepo{}, &mockPublisher{})

		delivered, failed, err := d.processBatch(ctx)
		require.NoError(t, err)
		assert.Zero(t, delivered)
		assert.Zero(t, failed)
	})

	t.Run("publish failure records attempt without blocking the batch", func(t *testing.T) {
		repo := &mockOutboxRepo{
			pending: []*domain.RecallNotification{
				pendingCommand(1, "cmd-1", 0),
				pendingCommand(2, "cmd-2", 0),
			},
		}
		pub := &mockPublisher{
			failFor: map[string]error{"cmd-1": errors.New("broker unavailable")},
		}
		d := newTestDispatcher(repo, pub)

		delivered, failed, err := d.processBatch(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, delivered)
		assert.Equal(t, 1, failed)

		require.Len(t, repo.failures, 1)
		assert.Equal(t, int64(1), repo.failures[0].id)
		assert.Equal(t, 1, repo.failures[0].attempts)
		assert.False(t, repo.failures[0].final)

		assert.Equal(t, []int64{2}, repo.delivered)
	})

	t.Run("exhausted attempts mark the command failed for good", func(t *testing.T) {
		repo := &mockOutboxRepo{
			pending: []*domain.RecallNotification{
				pendingCommand(1, "cmd-1", 2),
			},
		}
		pub := &mockPublisher{
			failFor: map[string]error{"cmd-1": errors.New("broker unavailable")},
		}
		d := newTestDispatcher(repo, pub)

		delivered, failed, err := d.processBatch(ctx)
		require.NoError(t, err)

		assert.Zero(t, delivered)
		assert.Equal(t, 1, failed)
		require.Len(t, repo.failures, 1)
		assert.Equal(t, 3, repo.failures[0].attempts)
		assert.True(t, repo.failures[0].final)
	})

	t.Run("claim respects batch size", func(t *testing.T) {
		repo := &mockOutboxRepo{}
		for i := int64(1); i <= 15; i++ {
			repo.pending = append(repo.pending, pendingCommand(i, "", 0))
		}
		d := newTestDispatcher(repo, &mockPublisher{})

		delivered, _, err := d.processBatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 10, delivered)

		count, err := repo.CountPending(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})
}

func TestDispatcher_StartStop(t *testing.T) {
	repo := &mockOutboxRepo{
		pending: []*domain.RecallNotification{
			pendingCommand(1, "cmd-1", 0),
			pendingCommand(2, "cmd-2", 0),
		},
	}
	pub := &mockPublisher{}
	d := newTestDispatcher(repo, pub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d.Start(ctx)

	require.Eventually(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return len(repo.delivered) == 2
	}, 2*time.Second, 10*time.Millisecond)

	d.Stop()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, []int64{1, 2}, repo.delivered)
}
