package models

import "time"

// OccupancyReportRequest запрос на отчет о занятости киоска
type OccupancyReportRequest struct {
	KioskID             int64     `json:"kioskId"`
	FromDate            time.Time `json:"fromDate"`
	ToDate              time.Time `json:"toDate"`
	SlotDurationSeconds int       `json:"slotDurationSeconds,omitempty"` // 0 = значение по умолчанию
}

// DayOccupancy агрегаты занятости одного дня
type DayOccupancy struct {
	Date                 string  `json:"date"` // "2026-09-15"
	TotalSlots           int     `json:"totalSlots"`
	FreeSlots            int     `json:"freeSlots"`
	PartiallyBookedSlots int     `json:"partiallyBookedSlots"`
	BookedSlots          int     `json:"bookedSlots"`
	OverbookedSlots      int     `json:"overbookedSlots"`
	OccupancyRate        float64 `json:"occupancyRate"`    // Процент, booked + 0.5 * partial
	PotentialRevenue     float64 `json:"potentialRevenue"` // Сумма базовых цен полностью занятых слотов
}

// OccupancySummary агрегаты занятости за весь период
type OccupancySummary struct {
	TotalSlots           int     `json:"totalSlots"`
	FreeSlots            int     `json:"freeSlots"`
	PartiallyBookedSlots int     `json:"partiallyBookedSlots"`
	BookedSlots          int     `json:"bookedSlots"`
	OverbookedSlots      int     `json:"overbookedSlots"`
	OccupancyRate        float64 `json:"occupancyRate"`
	PotentialRevenue     float64 `json:"potentialRevenue"`
}

// OccupancyReportResponse отчет о занятости киоска за период
type OccupancyReportResponse struct {
	KioskID   int64            `json:"kioskId"`
	KioskName string           `json:"kioskName"`
	FromDate  string           `json:"fromDate"`
	ToDate    string           `json:"toDate"`
	Days      []DayOccupancy   `json:"days"`
	Summary   OccupancySummary `json:"summary"`
}
