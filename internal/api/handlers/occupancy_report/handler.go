package occupancy_report

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/ADS-BookingService/internal/api/handlers"
	"github.com/m04kA/ADS-BookingService/internal/domain"
	"github.com/m04kA/ADS-BookingService/internal/service/reports"
	"github.com/m04kA/ADS-BookingService/internal/service/reports/models"
)

const (
	msgInvalidKioskID      = "некорректный ID киоска"
	msgMissingDates        = "параметры from и to обязательны"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSlotDuration = "некорректная длительность слота"
	msgKioskNotFound       = "киоск не найден"
	msgInvalidRequest      = "некорректные параметры отчета"
)

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/kiosks/{kioskId}/occupancy-report
// Query params: from (required, YYYY-MM-DD), to (required, YYYY-MM-DD),
// slotDurationSeconds (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем kioskId из URL
	kioskIDStr := vars["kioskId"]
	kioskID, err := strconv.ParseInt(kioskIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /kiosks/{id}/occupancy-report - Invalid kiosk ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidKioskID)
		return
	}

	query := r.URL.Query()
	fromStr := query.Get("from")
	toStr := query.Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /kiosks/{id}/occupancy-report - Missing date range: kiosk_id=%d", kioskID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	fromDate, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		h.logger.Warn("GET /kiosks/{id}/occupancy-report - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	toDate, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		h.logger.Warn("GET /kiosks/{id}/occupancy-report - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slotDurationSeconds := 0
	if durStr := query.Get("slotDurationSeconds"); durStr != "" {
		slotDurationSeconds, err = strconv.Atoi(durStr)
		if err != nil {
			h.logger.Warn("GET /kiosks/{id}/occupancy-report - Invalid slot duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlotDuration)
			return
		}
	}

	result, err := h.service.GetOccupancyReport(r.Context(), &models.OccupancyReportRequest{
		KioskID:             kioskID,
		FromDate:            fromDate,
		ToDate:              toDate,
		SlotDurationSeconds: slotDurationSeconds,
	})
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrKioskNotFound):
			h.logger.Warn("GET /kiosks/{id}/occupancy-report - Kiosk not found: kiosk_id=%d", kioskID)
			handlers.RespondNotFound(w, msgKioskNotFound)

		case errors.Is(err, reports.ErrInvalidInput):
			h.logger.Warn("GET /kiosks/{id}/occupancy-report - Invalid request: kiosk_id=%d, error=%v",
				kioskID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /kiosks/{id}/occupancy-report - Failed to build report: kiosk_id=%d, error=%v",
				kioskID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /kiosks/{id}/occupancy-report - Report built successfully: kiosk_id=%d, days=%d",
		kioskID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
