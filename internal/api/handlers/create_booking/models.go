package create_booking

import (
	"time"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	createBooking "github.com/m04kA/ADS-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/ADS-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	KioskID             int64  `json:"kioskId"`
	ClientID            int64  `json:"clientId"`
	MediaID             int64  `json:"mediaId"`
	Date                string `json:"date"`      // "2026-09-15"
	SlotStart           string `json:"slotStart"` // "09:00"
	SlotDurationSeconds int    `json:"slotDurationSeconds,omitempty"`

	Mode string `json:"mode"` // "fixed" | "random_frequency"

	// fixed mode
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`

	// random_frequency mode
	WindowStart      *string `json:"windowStart,omitempty"`
	WindowEnd        *string `json:"windowEnd,omitempty"`
	TotalPlaySeconds *int    `json:"totalPlaySeconds,omitempty"`

	Priority int `json:"priority,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                  int64  `json:"id"`
	KioskID             int64  `json:"kioskId"`
	Date                string `json:"date"`
	SlotStart           string `json:"slotStart"`
	SlotDurationSeconds int    `json:"slotDurationSeconds"`

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

	Priority int    `json:"priority"`
	Status   string `json:"status"`

	SlotConsumedSeconds  int     `json:"slotConsumedSeconds"`
	SlotOccupancyPercent float64 `json:"slotOccupancyPercent"`
	Overbooked           bool    `json:"overbooked"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время начала слота
	slotStart, err := types.NewTimeStringFromString(r.SlotStart)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		KioskID:             r.KioskID,
		ClientID:            r.ClientID,
		MediaID:             r.MediaID,
		Date:                date,
		SlotStart:           slotStart,
		SlotDurationSeconds: r.SlotDurationSeconds,
		Mode:                domain.ScheduleMode(r.Mode),
		TotalPlaySeconds:    r.TotalPlaySeconds,
		Priority:            r.Priority,
	}

	if req.StartTime, err = parseOptionalTime(r.StartTime); err != nil {
		return nil, err
	}
	if req.EndTime, err = parseOptionalTime(r.EndTime); err != nil {
		return nil, err
	}
	if req.WindowStart, err = parseOptionalTime(r.WindowStart); err != nil {
		return nil, err
	}
	if req.WindowEnd, err = parseOptionalTime(r.WindowEnd); err != nil {
		return nil, err
	}

	return req, nil
}

func parseOptionalTime(s *string) (*types.TimeString, error) {
	if s == nil {
		return nil, nil
	}
	ts, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:                   resp.ID,
		KioskID:              resp.KioskID,
		Date:                 resp.Date.Format(domain.DateFormat),
		SlotStart:            resp.SlotStart.String(),
		SlotDurationSeconds:  resp.SlotDurationSeconds,
		ClientID:             resp.ClientID,
		ClientName:           resp.ClientName,
		MediaID:              resp.MediaID,
		MediaName:            resp.MediaName,
		MediaType:            resp.MediaType,
		Mode:                 string(resp.Mode),
		TotalPlaySeconds:     resp.TotalPlaySeconds,
		Priority:             resp.Priority,
		Status:               resp.Status,
		SlotConsumedSeconds:  resp.SlotConsumedSeconds,
		SlotOccupancyPercent: resp.SlotOccupancyPercent,
		Overbooked:           resp.Overbooked,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.StartTime != nil {
		s := resp.StartTime.String()
		out.StartTime = &s
	}
	if resp.EndTime != nil {
		s := resp.EndTime.String()
		out.EndTime = &s
	}
	if resp.WindowStart != nil {
		s := resp.WindowStart.String()
		out.WindowStart = &s
	}
	if resp.WindowEnd != nil {
		s := resp.WindowEnd.String()
		out.WindowEnd = &s
	}

	return out
}
