package get_slot_grid

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ADS-BookingService/internal/api/handlers"
	getSlotGrid "github.com/m04kA/ADS-BookingService/internal/usecase/get_slot_grid"
)

const (
	msgInvalidKioskID      = "некорректный ID киоска"
	msgMissingDates        = "параметры from и to обязательны"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSlotDuration = "некорректная длительность слота"
	msgKioskNotFound       = "киоск не найден"
	msgInvalidRange        = "некорректный диапазон дат"
	msgRangeTooWide        = "диапазон дат превышает допустимый предел"
)

type Handler struct {
	useCase GetSlotGridUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/kiosks/{kioskId}/slot-grid
// Query params: from (required, YYYY-MM-DD), to (required, YYYY-MM-DD),
// slotDurationSeconds (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем kioskId из URL
	kioskIDStr := vars["kioskId"]
	kioskID, err := strconv.ParseInt(kioskIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /kiosks/{id}/slot-grid - Invalid kiosk ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidKioskID)
		return
	}

	// Извлекаем границы диапазона из query параметров
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /kiosks/{id}/slot-grid - Missing date range: kiosk_id=%d", kioskID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	// Извлекаем длительность слота, 0 означает значение по умолчанию
	slotDurationSeconds := 0
	if durStr := r.URL.Query().Get("slotDurationSeconds"); durStr != "" {
		slotDurationSeconds, err = strconv.Atoi(durStr)
		if err != nil {
			h.logger.Warn("GET /kiosks/{id}/slot-grid - Invalid slot duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlotDuration)
			return
		}
	}

	// Формируем запрос к use case (с парсингом дат)
	useCaseReq, err := ToUseCaseRequest(kioskID, fromStr, toStr, slotDurationSeconds)
	if err != nil {
		h.logger.Warn("GET /kiosks/{id}/slot-grid - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getSlotGrid.ErrKioskNotFound):
			h.logger.Warn("GET /kiosks/{id}/slot-grid - Kiosk not found: kiosk_id=%d", kioskID)
			handlers.RespondNotFound(w, msgKioskNotFound)

		case errors.Is(err, getSlotGrid.ErrInvalidRange):
			h.logger.Warn("GET /kiosks/{id}/slot-grid - Invalid range: kiosk_id=%d, from=%s, to=%s",
				kioskID, fromStr, toStr)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getSlotGrid.ErrRangeTooWide):
			h.logger.Warn("GET /kiosks/{id}/slot-grid - Range too wide: kiosk_id=%d, from=%s, to=%s",
				kioskID, fromStr, toStr)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, getSlotGrid.ErrInvalidSlotDuration):
			h.logger.Warn("GET /kiosks/{id}/slot-grid - Invalid slot duration: kiosk_id=%d, duration=%d",
				kioskID, slotDurationSeconds)
			handlers.RespondBadRequest(w, msgInvalidSlotDuration)

		case errors.Is(err, getSlotGrid.ErrInvalidInput):
			h.logger.Warn("GET /kiosks/{id}/slot-grid - Invalid input: kiosk_id=%d, error=%v", kioskID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /kiosks/{id}/slot-grid - Failed to get slot grid: kiosk_id=%d, error=%v",
				kioskID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /kiosks/{id}/slot-grid - Slot grid retrieved successfully: kiosk_id=%d, slots_count=%d",
		kioskID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
