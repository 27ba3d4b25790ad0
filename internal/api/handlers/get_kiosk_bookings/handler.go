package get_kiosk_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ADS-BookingService/internal/api/handlers"
	"github.com/m04kA/ADS-BookingService/internal/service/bookings"
)

const (
	msgInvalidKioskID = "некорректный ID киоска"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter  = "некорректные параметры фильтрации"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/kiosks/{kioskId}/bookings
// Query params: startDate, endDate (YYYY-MM-DD), status, includeRecalled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем kioskId из URL
	kioskIDStr := vars["kioskId"]
	kioskID, err := strconv.ParseInt(kioskIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /kiosks/{id}/bookings - Invalid kiosk ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidKioskID)
		return
	}

	query := r.URL.Query()
	includeRecalled := query.Get("includeRecalled") == "true"

	// Формируем запрос к сервису (с парсингом дат)
	req, err := ToServiceRequest(kioskID,
		query.Get("startDate"), query.Get("endDate"), query.Get("status"), includeRecalled)
	if err != nil {
		h.logger.Warn("GET /kiosks/{id}/bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetKioskBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /kiosks/{id}/bookings - Invalid filter: kiosk_id=%d, error=%v", kioskID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /kiosks/{id}/bookings - Failed to get bookings: kiosk_id=%d, error=%v",
				kioskID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /kiosks/{id}/bookings - Bookings retrieved successfully: kiosk_id=%d, count=%d",
		kioskID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
