package get_slot_grid

import (
	"time"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	getSlotGrid "github.com/m04kA/ADS-BookingService/internal/usecase/get_slot_grid"
)

// SlotBookingResponse краткие данные бронирования внутри слота
type SlotBookingResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	ClientName      string `json:"clientName"`
	MediaID         int64  `json:"mediaId"`
	MediaName       string `json:"mediaName"`
	Mode            string `json:"mode"`
	Status          string `json:"status"`
	Priority        int    `json:"priority"`
	ConsumedSeconds int    `json:"consumedSeconds"`
}

// SlotResponse HTTP модель одного слота сетки
type SlotResponse struct {
	Date             string  `json:"date"`      // "2026-09-15"
	StartTime        string  `json:"startTime"` // "09:00"
	EndTime          string  `json:"endTime"`   // "10:00"
	DurationSeconds  int     `json:"durationSeconds"`
	Tier             string  `json:"tier"` // "peak" | "non_peak"
	BasePrice        float64 `json:"basePrice"`
	Status           string  `json:"status"` // "free" | "partially_booked" | "booked"
	ConsumedSeconds  int     `json:"consumedSeconds"`
	OccupancyPercent float64 `json:"occupancyPercent"`
	Overbooked       bool    `json:"overbooked"`

	Bookings []SlotBookingResponse `json:"bookings"`
}

// SlotGridResponse HTTP модель сетки слотов
type SlotGridResponse struct {
	KioskID             int64          `json:"kioskId"`
	KioskName           string         `json:"kioskName"`
	FromDate            string         `json:"fromDate"`
	ToDate              string         `json:"toDate"`
	SlotDurationSeconds int            `json:"slotDurationSeconds"`
	Slots               []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос use case из параметров HTTP запроса
func ToUseCaseRequest(kioskID int64, fromStr, toStr string, slotDurationSeconds int) (*getSlotGrid.Request, error) {
	fromDate, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}

	toDate, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, err
	}

	return &getSlotGrid.Request{
		KioskID:             kioskID,
		FromDate:            fromDate,
		ToDate:              toDate,
		SlotDurationSeconds: slotDurationSeconds,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotGrid.Response) *SlotGridResponse {
	out := &SlotGridResponse{
		KioskID:             resp.KioskID,
		KioskName:           resp.KioskName,
		FromDate:            resp.FromDate.Format(domain.DateFormat),
		ToDate:              resp.ToDate.Format(domain.DateFormat),
		SlotDurationSeconds: resp.SlotDurationSeconds,
		Slots:               make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		endTime := ""
		if end, err := slot.EndTime(); err == nil {
			endTime = end.String()
		}

		slotResp := SlotResponse{
			Date:             slot.Date.Format(domain.DateFormat),
			StartTime:        slot.StartTime.String(),
			EndTime:          endTime,
			DurationSeconds:  slot.DurationSeconds,
			Tier:             string(slot.Tier),
			BasePrice:        slot.BasePrice,
			Status:           string(slot.Status()),
			ConsumedSeconds:  slot.ConsumedSeconds(),
			OccupancyPercent: slot.OccupancyPercent(),
			Overbooked:       slot.IsOverbooked(),
			Bookings:         make([]SlotBookingResponse, 0, len(slot.Bookings)),
		}

		for _, b := range slot.Bookings {
			slotResp.Bookings = append(slotResp.Bookings, SlotBookingResponse{
				ID:              b.ID,
				ClientID:        b.ClientID,
				ClientName:      b.ClientName,
				MediaID:         b.MediaID,
				MediaName:       b.MediaName,
				Mode:            string(b.Mode),
				Status:          string(b.Status),
				Priority:        b.Priority,
				ConsumedSeconds: b.ConsumedSeconds(),
			})
		}

		out.Slots = append(out.Slots, slotResp)
	}

	return out
}
