package domain

import "time"

// NotificationStatus delivery status of an outbox row
type NotificationStatus string

const (
	NotificationPending   NotificationStatus = "pending"
	NotificationDelivered NotificationStatus = "delivered"
	NotificationFailed    NotificationStatus = "failed"
)

// RecallNotification is one stop-playback command awaiting delivery to the
// device-control plane. Rows are written in the same transaction that marks
// bookings recalled, so ledger state and the outbox never diverge.
type RecallNotification struct {
	ID        int64
	CommandID string // uuid, device-side stop commands are idempotent by it
	BatchID   string // uuid of the recall batch, empty for single recalls
	BookingID int64
	KioskID   int64
	MediaID   int64

	Status    NotificationStatus
	Attempts  int
	LastError *string

	CreatedAt   time.Time
	DeliveredAt *time.Time
}
