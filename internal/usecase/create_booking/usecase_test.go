package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	"github.com/m04kA/ADS-BookingService/internal/integrations/kioskservice"
	"github.com/m04kA/ADS-BookingService/internal/integrations/mediaservice"
	"github.com/m04kA/ADS-BookingService/pkg/ptr"
	"github.com/m04kA/ADS-BookingService/pkg/types"
)

type mockBookingRepo struct {
	createFunc         func(ctx context.Context, booking *domain.SlotBooking) (*domain.SlotBooking, error)
	getBySlotRangeFunc func(ctx context.Context, kioskID int64, date time.Time, from, to types.TimeString) ([]*domain.SlotBooking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.SlotBooking) (*domain.SlotBooking, error) {
	return m.createFunc(ctx, booking)
}

func (m *mockBookingRepo) GetBySlotRange(ctx context.Context, kioskID int64, date time.Time, from, to types.TimeString) ([]*domain.SlotBooking, error) {
	return m.getBySlotRangeFunc(ctx, kioskID, date, from, to)
}

type mockKioskClient struct {
	getKioskFunc func(ctx context.Context, kioskID int64) (*kioskservice.Kiosk, error)
}

func (m *mockKioskClient) GetKiosk(ctx context.Context, kioskID int64) (*kioskservice.Kiosk, error) {
	return m.getKioskFunc(ctx, kioskID)
}

type mockMediaClient struct {
	getAdvertiserFunc func(ctx context.Context, clientID int64) (*mediaservice.Advertiser, error)
	getMediaFunc      func(ctx context.Context, mediaID int64) (*mediaservice.Media, error)
}

func (m *mockMediaClient) GetAdvertiser(ctx context.Context, clientID int64) (*mediaservice.Advertiser, error) {
	return m.getAdvertiserFunc(ctx, clientID)
}

func (m *mockMediaClient) GetMedia(ctx context.Context, mediaID int64) (*mediaservice.Media, error) {
	return m.getMediaFunc(ctx, mediaID)
}

type mockTxManager struct{}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubTimeProvider struct {
	now time.Time
}

func (p *stubTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

func onlineKiosk() *kioskservice.Kiosk {
	allDay := kioskservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("08:00"),
		CloseTime: ptr.Ptr("22:00"),
	}
	return &kioskservice.Kiosk{
		ID:     1,
		Name:   "Mall Atrium East",
		Status: kioskservice.StatusOnline,
		WorkingHours: kioskservice.WeekSchedule{
			Monday:    allDay,
			Tuesday:   allDay,
			Wednesday: allDay,
			Thursday:  allDay,
			Friday:    allDay,
			Saturday:  allDay,
			Sunday:    allDay,
		},
	}
}

func newTestUseCase(repo *mockBookingRepo, kiosks *mockKioskClient, media *mockMediaClient) *UseCase {
	uc := NewUseCase(repo, kiosks, media, &mockTxManager{}, &nopLogger{})
	uc.timeProvider = &stubTimeProvider{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func defaultMediaClient() *mockMediaClient {
	return &mockMediaClient{
		getAdvertiserFunc: func(ctx context.Context, clientID int64) (*mediaservice.Advertiser, error) {
			return &mediaservice.Advertiser{ID: clientID, Name: "Acme Beverages"}, nil
		},
		getMediaFunc: func(ctx context.Context, mediaID int64) (*mediaservice.Media, error) {
			return &mediaservice.Media{ID: mediaID, ClientID: 10, Name: "Autumn promo", Type: "video", DurationSeconds: 15}, nil
		},
	}
}

func defaultKioskClient() *mockKioskClient {
	return &mockKioskClient{
		getKioskFunc: func(ctx context.Context, kioskID int64) (*kioskservice.Kiosk, error) {
			return onlineKiosk(), nil
		},
	}
}

func echoRepo(existing []*domain.SlotBooking) *mockBookingRepo {
	return &mockBookingRepo{
		getBySlotRangeFunc: func(ctx context.Context, kioskID int64, date time.Time, from, to types.TimeString) ([]*domain.SlotBooking, error) {
			return existing, nil
		},
		createFunc: func(ctx context.Context, booking *domain.SlotBooking) (*domain.SlotBooking, error) {
			created := *booking
			created.ID = 42
			created.CreatedAt = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
			created.UpdatedAt = created.CreatedAt
			return &created, nil
		},
	}
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates fixed booking into a free slot", func(t *testing.T) {
		uc := newTestUseCase(echoRepo(nil), defaultKioskClient(), defaultMediaClient())

		resp, err := uc.Execute(ctx, validFixedRequest())
		require.NoError(t, err)

		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, "scheduled", resp.Status)
		assert.Equal(t, "Acme Beverages", resp.ClientName)
		assert.Equal(t, 600, resp.SlotConsumedSeconds)
		assert.InDelta(t, 16.67, resp.SlotOccupancyPercent, 0.01)
		assert.False(t, resp.Overbooked)
	})

	t.Run("applies duration and priority defaults", func(t *testing.T) {
		var created *domain.SlotBooking
		repo := echoRepo(nil)
		baseCreate := repo.createFunc
		repo.createFunc = func(ctx context.Context, booking *domain.SlotBooking) (*domain.SlotBooking, error) {
			created = booking
			return baseCreate(ctx, booking)
		}
		uc := newTestUseCase(repo, defaultKioskClient(), defaultMediaClient())

		req := validFixedRequest()
		req.SlotDurationSeconds = 0
		req.Priority = 0

		_, err := uc.Execute(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, domain.DefaultSlotDurationSeconds, created.SlotDurationSeconds)
		assert.Equal(t, domain.DefaultPriority, created.Priority)
	})

	t.Run("overbooking is allowed but reported", func(t *testing.T) {
		existing := []*domain.SlotBooking{
			{
				Mode:             domain.ModeRandomFrequency,
				Status:           domain.StatusScheduled,
				TotalPlaySeconds: ptr.Ptr(3300),
			},
		}
		uc := newTestUseCase(echoRepo(existing), defaultKioskClient(), defaultMediaClient())

		resp, err := uc.Execute(ctx, validFixedRequest())
		require.NoError(t, err)

		assert.True(t, resp.Overbooked)
		assert.Equal(t, 3900, resp.SlotConsumedSeconds)
		assert.Equal(t, 100.0, resp.SlotOccupancyPercent)
	})

	t.Run("recalled bookings do not consume capacity", func(t *testing.T) {
		existing := []*domain.SlotBooking{
			{
				Mode:             domain.ModeRandomFrequency,
				Status:           domain.StatusRecalled,
				TotalPlaySeconds: ptr.Ptr(3600),
			},
		}
		uc := newTestUseCase(echoRepo(existing), defaultKioskClient(), defaultMediaClient())

		resp, err := uc.Execute(ctx, validFixedRequest())
		require.NoError(t, err)

		assert.False(t, resp.Overbooked)
		assert.Equal(t, 600, resp.SlotConsumedSeconds)
	})

	t.Run("rejects past date", func(t *testing.T) {
		uc := newTestUseCase(echoRepo(nil), defaultKioskClient(), defaultMediaClient())

		req := validFixedRequest()
		req.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects unknown kiosk", func(t *testing.T) {
		kiosks := &mockKioskClient{
			getKioskFunc: func(ctx context.Context, kioskID int64) (*kioskservice.Kiosk, error) {
				return nil, kioskservice.ErrKioskNotFound
			},
		}
		uc := newTestUseCase(echoRepo(nil), kiosks, defaultMediaClient())

		_, err := uc.Execute(ctx, validFixedRequest())
		assert.ErrorIs(t, err, ErrKioskNotFound)
	})

	t.Run("rejects offline kiosk", func(t *testing.T) {
		kiosks := &mockKioskClient{
			getKioskFunc: func(ctx context.Context, kioskID int64) (*kioskservice.Kiosk, error) {
				kiosk := onlineKiosk()
				kiosk.Status = kioskservice.StatusMaintenance
				return kiosk, nil
			},
		}
		uc := newTestUseCase(echoRepo(nil), kiosks, defaultMediaClient())

		_, err := uc.Execute(ctx, validFixedRequest())
		assert.ErrorIs(t, err, ErrKioskNotOnline)
	})

	t.Run("rejects media owned by another client", func(t *testing.T) {
		media := defaultMediaClient()
		media.getMediaFunc = func(ctx context.Context, mediaID int64) (*mediaservice.Media, error) {
			return &mediaservice.Media{ID: mediaID, ClientID: 999, Name: "Foreign promo", Type: "video"}, nil
		}
		uc := newTestUseCase(echoRepo(nil), defaultKioskClient(), media)

		_, err := uc.Execute(ctx, validFixedRequest())
		assert.ErrorIs(t, err, ErrMediaOwnership)
	})

	t.Run("rejects unknown client", func(t *testing.T) {
		media := defaultMediaClient()
		media.getAdvertiserFunc = func(ctx context.Context, clientID int64) (*mediaservice.Advertiser, error) {
			return nil, mediaservice.ErrClientNotFound
		}
		uc := newTestUseCase(echoRepo(nil), defaultKioskClient(), media)

		_, err := uc.Execute(ctx, validFixedRequest())
		assert.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("rejects slot outside the operating grid", func(t *testing.T) {
		uc := newTestUseCase(echoRepo(nil), defaultKioskClient(), defaultMediaClient())

		req := validFixedRequest()
		req.SlotStart = "09:20"
		req.StartTime = timePtr("09:20")
		req.EndTime = timePtr("09:30")

		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})
}
