package models

import (
	"errors"
	"time"

	"github.com/m04kA/ADS-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetKioskBookingsRequest запрос на получение журнала бронирований киоска
type GetKioskBookingsRequest struct {
	KioskID         int64      `json:"kioskId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeRecalled bool       `json:"includeRecalled,omitempty"` // Включить отозванные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetKioskBookingsRequest) ToDomainFilter() (domain.KioskBookingsFilter, error) {
	filter := domain.KioskBookingsFilter{
		KioskID:         r.KioskID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeRecalled: r.IncludeRecalled,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на обновление статуса воспроизведения
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AttachProofOfPlayRequest телеметрия воспроизведения от киоска
type AttachProofOfPlayRequest struct {
	ActualPlaySeconds    *int     `json:"actualPlaySeconds,omitempty"`
	Impressions          *int64   `json:"impressions,omitempty"`
	AttentivenessPercent *float64 `json:"attentivenessPercent,omitempty"`
}

// ToDomainProofOfPlay конвертирует request в domain модель
func (r *AttachProofOfPlayRequest) ToDomainProofOfPlay() domain.ProofOfPlay {
	return domain.ProofOfPlay{
		ActualPlaySeconds:    r.ActualPlaySeconds,
		Impressions:          r.Impressions,
		AttentivenessPercent: r.AttentivenessPercent,
	}
}

// RecallBookingRequest запрос на отзыв одного бронирования
type RecallBookingRequest struct {
	Reason  string `json:"reason"`
	Confirm bool   `json:"confirm"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                  int64  `json:"id"`
	KioskID             int64  `json:"kioskId"`
	Date                string `json:"date"`      // "2026-09-15"
	SlotStart           string `json:"slotStart"` // "09:00"
	SlotDurationSeconds int    `json:"slotDurationSeconds"`

	// Денормализованные данные каталога
	ClientID   int64  `json:"clientId"`
	ClientName string `json:"clientName"`
	MediaID    int64  `json:"mediaId"`
	MediaName  string `json:"mediaName"`
	MediaType  string `json:"mediaType"`

	Mode             string  `json:"mode"`
	StartTime        *string `json:"startTime,omitempty"`
	EndTime          *string `json:"endTime,omitempty"`
	WindowStart      *string `json:"windowStart,omitempty"`
	WindowEnd        *string `json:"windowEnd,omitempty"`
	TotalPlaySeconds *int    `json:"totalPlaySeconds,omitempty"`

	Priority        int    `json:"priority"`
	Status          string `json:"status"`
	ConsumedSeconds int    `json:"consumedSeconds"`

	ActualPlaySeconds    *int     `json:"actualPlaySeconds,omitempty"`
	Impressions          *int64   `json:"impressions,omitempty"`
	AttentivenessPercent *float64 `json:"attentivenessPercent,omitempty"`

	RecallReason *string `json:"recallReason,omitempty"`
	RecalledAt   *string `json:"recalledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// RecallResponse ответ на отзыв одного бронирования
type RecallResponse struct {
	BookingID       int64  `json:"bookingId"`
	Status          string `json:"status"`
	AlreadyRecalled bool   `json:"alreadyRecalled"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.SlotBooking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                   b.ID,
		KioskID:              b.KioskID,
		Date:                 b.SlotDate.Format(domain.DateFormat),
		SlotStart:            b.SlotStart.String(),
		SlotDurationSeconds:  b.SlotDurationSeconds,
		ClientID:             b.ClientID,
		ClientName:           b.ClientName,
		MediaID:              b.MediaID,
		MediaName:            b.MediaName,
		MediaType:            b.MediaType,
		Mode:                 string(b.Mode),
		TotalPlaySeconds:     b.TotalPlaySeconds,
		Priority:             b.Priority,
		Status:               string(b.Status),
		ConsumedSeconds:      b.ConsumedSeconds(),
		ActualPlaySeconds:    b.ProofOfPlay.ActualPlaySeconds,
		Impressions:          b.ProofOfPlay.Impressions,
		AttentivenessPercent: b.ProofOfPlay.AttentivenessPercent,
		RecallReason:         b.RecallReason,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}

	if b.StartTime != nil {
		s := b.StartTime.String()
		resp.StartTime = &s
	}
	if b.EndTime != nil {
		s := b.EndTime.String()
		resp.EndTime = &s
	}
	if b.WindowStart != nil {
		s := b.WindowStart.String()
		resp.WindowStart = &s
	}
	if b.WindowEnd != nil {
		s := b.WindowEnd.String()
		resp.WindowEnd = &s
	}

	// Конвертируем RecalledAt в строку ISO 8601
	if b.RecalledAt != nil {
		recalledStr := b.RecalledAt.Format(time.RFC3339)
		resp.RecalledAt = &recalledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.SlotBooking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	// Валидируем статус
	validStatuses := []domain.BookingStatus{
		domain.StatusScheduled,
		domain.StatusPlaying,
		domain.StatusCompleted,
		domain.StatusRecalled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
