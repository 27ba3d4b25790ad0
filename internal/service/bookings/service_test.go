package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/ADS-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/ADS-BookingService/internal/service/bookings/models"
	"github.com/m04kA/ADS-BookingService/pkg/ptr"
)

type mockBookingRepo struct {
	getByIDFunc              func(ctx context.Context, id int64) (*domain.SlotBooking, error)
	getByKioskWithFilterFunc func(ctx context.Context, filter domain.KioskBookingsFilter) ([]*domain.SlotBooking, error)
	updateStatusFunc         func(ctx context.Context, id int64, status domain.BookingStatus) error
	recallFunc               func(ctx context.Context, id int64, reason string) error
	updateProofOfPlayFunc    func(ctx context.Context, id int64, pop domain.ProofOfPlay) error
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.SlotBooking, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockBookingRepo) GetByKioskWithFilter(ctx context.Context, filter domain.KioskBookingsFilter) ([]*domain.SlotBooking, error) {
	return m.getByKioskWithFilterFunc(ctx, filter)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return m.updateStatusFunc(ctx, id, status)
}

func (m *mockBookingRepo) Recall(ctx context.Context, id int64, reason string) error {
	return m.recallFunc(ctx, id, reason)
}

func (m *mockBookingRepo) UpdateProofOfPlay(ctx context.Context, id int64, pop domain.ProofOfPlay) error {
	return m.updateProofOfPlayFunc(ctx, id, pop)
}

type mockOutboxRepo struct {
	enqueueFunc func(ctx context.Context, notifications []*domain.RecallNotification) error
}

func (m *mockOutboxRepo) Enqueue(ctx context.Context, notifications []*domain.RecallNotification) error {
	return m.enqueueFunc(ctx, notifications)
}

type mockTxManager struct{}

func (m *mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *mockTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

func repoReturning(booking *domain.SlotBooking) *mockBookingRepo {
	return &mockBookingRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.SlotBooking, error) {
			if booking == nil {
				return nil, bookingRepo.ErrBookingNotFound
			}
			return booking, nil
		},
		updateStatusFunc: func(ctx context.Context, id int64, status domain.BookingStatus) error {
			return nil
		},
		recallFunc: func(ctx context.Context, id int64, reason string) error {
			return nil
		},
		updateProofOfPlayFunc: func(ctx context.Context, id int64, pop domain.ProofOfPlay) error {
			return nil
		},
	}
}

func newTestService(repo *mockBookingRepo, outbox *mockOutboxRepo) *Service {
	if outbox == nil {
		outbox = &mockOutboxRepo{
			enqueueFunc: func(ctx context.Context, notifications []*domain.RecallNotification) error {
				return nil
			},
		}
	}
	return NewService(repo, outbox, &mockTxManager{}, &nopLogger{})
}

func scheduledBooking(id int64) *domain.SlotBooking {
	return &domain.SlotBooking{
		ID:      id,
		KioskID: 7,
		MediaID: 100,
		Status:  domain.StatusScheduled,
	}
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("scheduled to playing", func(t *testing.T) {
		var updatedTo domain.BookingStatus
		repo := repoReturning(scheduledBooking(1))
		repo.updateStatusFunc = func(ctx context.Context, id int64, status domain.BookingStatus) error {
			updatedTo = status
			return nil
		}
		svc := newTestService(repo, nil)

		err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "playing"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPlaying, updatedTo)
	})

	t.Run("scheduled to completed is not allowed", func(t *testing.T) {
		svc := newTestService(repoReturning(scheduledBooking(1)), nil)

		err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "completed"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("recall through status update is rejected", func(t *testing.T) {
		svc := newTestService(repoReturning(scheduledBooking(1)), nil)

		err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "recalled"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		svc := newTestService(repoReturning(scheduledBooking(1)), nil)

		err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "paused"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("completed booking is terminal", func(t *testing.T) {
		b := scheduledBooking(1)
		b.Status = domain.StatusCompleted
		svc := newTestService(repoReturning(b), nil)

		err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "playing"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("missing booking", func(t *testing.T) {
		svc := newTestService(repoReturning(nil), nil)

		err := svc.UpdateStatus(ctx, 99, &models.UpdateStatusRequest{Status: "playing"})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_AttachProofOfPlay(t *testing.T) {
	ctx := context.Background()

	playing := func() *domain.SlotBooking {
		b := scheduledBooking(1)
		b.Status = domain.StatusPlaying
		return b
	}

	t.Run("attaches telemetry to playing booking", func(t *testing.T) {
		var attached domain.ProofOfPlay
		repo := repoReturning(playing())
		repo.updateProofOfPlayFunc = func(ctx context.Context, id int64, pop domain.ProofOfPlay) error {
			attached = pop
			return nil
		}
		svc := newTestService(repo, nil)

		err := svc.AttachProofOfPlay(ctx, 1, &models.AttachProofOfPlayRequest{
			ActualPlaySeconds:    ptr.Ptr(570),
			Impressions:          ptr.Ptr(int64(1200)),
			AttentivenessPercent: ptr.Ptr(34.5),
		})
		require.NoError(t, err)
		assert.Equal(t, 570, *attached.ActualPlaySeconds)
	})

	t.Run("allowed for completed booking", func(t *testing.T) {
		b := scheduledBooking(1)
		b.Status = domain.StatusCompleted
		svc := newTestService(repoReturning(b), nil)

		err := svc.AttachProofOfPlay(ctx, 1, &models.AttachProofOfPlayRequest{
			ActualPlaySeconds: ptr.Ptr(600),
		})
		assert.NoError(t, err)
	})

	t.Run("rejected before playback starts", func(t *testing.T) {
		svc := newTestService(repoReturning(scheduledBooking(1)), nil)

		err := svc.AttachProofOfPlay(ctx, 1, &models.AttachProofOfPlayRequest{
			ActualPlaySeconds: ptr.Ptr(600),
		})
		assert.ErrorIs(t, err, ErrProofOfPlayNotAllowed)
	})

	t.Run("empty telemetry rejected", func(t *testing.T) {
		svc := newTestService(repoReturning(playing()), nil)

		err := svc.AttachProofOfPlay(ctx, 1, &models.AttachProofOfPlayRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("attentiveness out of range rejected", func(t *testing.T) {
		svc := newTestService(repoReturning(playing()), nil)

		err := svc.AttachProofOfPlay(ctx, 1, &models.AttachProofOfPlayRequest{
			AttentivenessPercent: ptr.Ptr(101.0),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Recall(t *testing.T) {
	ctx := context.Background()

	validReq := func() *models.RecallBookingRequest {
		return &models.RecallBookingRequest{Reason: "campaign cancelled", Confirm: true}
	}

	t.Run("recalls booking and enqueues stop command", func(t *testing.T) {
		var enqueued []*domain.RecallNotification
		outbox := &mockOutboxRepo{
			enqueueFunc: func(ctx context.Context, notifications []*domain.RecallNotification) error {
				enqueued = append(enqueued, notifications...)
				return nil
			},
		}
		svc := newTestService(repoReturning(scheduledBooking(1)), outbox)

		resp, err := svc.Recall(ctx, 1, validReq())
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.BookingID)
		assert.Equal(t, "recalled", resp.Status)
		assert.False(t, resp.AlreadyRecalled)

		require.Len(t, enqueued, 1)
		assert.Equal(t, int64(1), enqueued[0].BookingID)
		assert.Equal(t, int64(7), enqueued[0].KioskID)
		assert.NotEmpty(t, enqueued[0].CommandID)
		assert.Empty(t, enqueued[0].BatchID)
	})

	t.Run("repeat recall is a no-op", func(t *testing.T) {
		b := scheduledBooking(1)
		b.Status = domain.StatusRecalled
		var enqueued int
		outbox := &mockOutboxRepo{
			enqueueFunc: func(ctx context.Context, notifications []*domain.RecallNotification) error {
				enqueued += len(notifications)
				return nil
			},
		}
		svc := newTestService(repoReturning(b), outbox)

		resp, err := svc.Recall(ctx, 1, validReq())
		require.NoError(t, err)

		assert.True(t, resp.AlreadyRecalled)
		assert.Zero(t, enqueued)
	})

	t.Run("completed booking cannot be recalled", func(t *testing.T) {
		b := scheduledBooking(1)
		b.Status = domain.StatusCompleted
		svc := newTestService(repoReturning(b), nil)

		_, err := svc.Recall(ctx, 1, validReq())
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("requires confirmation", func(t *testing.T) {
		svc := newTestService(repoReturning(scheduledBooking(1)), nil)

		_, err := svc.Recall(ctx, 1, &models.RecallBookingRequest{Reason: "campaign cancelled"})
		assert.ErrorIs(t, err, ErrConfirmationRequired)
	})

	t.Run("requires reason", func(t *testing.T) {
		svc := newTestService(repoReturning(scheduledBooking(1)), nil)

		_, err := svc.Recall(ctx, 1, &models.RecallBookingRequest{Confirm: true})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_GetKioskBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("passes filter through to repository", func(t *testing.T) {
		var gotFilter domain.KioskBookingsFilter
		repo := repoReturning(nil)
		repo.getByKioskWithFilterFunc = func(ctx context.Context, filter domain.KioskBookingsFilter) ([]*domain.SlotBooking, error) {
			gotFilter = filter
			return []*domain.SlotBooking{scheduledBooking(1), scheduledBooking(2)}, nil
		}
		svc := newTestService(repo, nil)

		status := "scheduled"
		resp, err := svc.GetKioskBookings(ctx, &models.GetKioskBookingsRequest{
			KioskID:         7,
			Status:          &status,
			IncludeRecalled: true,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(7), gotFilter.KioskID)
		require.NotNil(t, gotFilter.Status)
		assert.Equal(t, domain.StatusScheduled, *gotFilter.Status)
		assert.True(t, gotFilter.IncludeRecalled)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("invalid status filter rejected", func(t *testing.T) {
		svc := newTestService(repoReturning(nil), nil)

		status := "paused"
		_, err := svc.GetKioskBookings(ctx, &models.GetKioskBookingsRequest{KioskID: 7, Status: &status})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
