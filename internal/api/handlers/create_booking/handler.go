package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/ADS-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/ADS-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgKioskNotFound      = "киоск не найден"
	msgKioskNotOnline     = "киоск выключен или на обслуживании"
	msgClientNotFound     = "клиент не найден"
	msgMediaNotFound      = "медиа-материал не найден"
	msgMediaOwnership     = "медиа-материал принадлежит другому клиенту"
	msgValidationFailed   = "некорректные параметры бронирования"
	msgInvalidSlot        = "слот не попадает в операционную сетку киоска"
	msgKioskClosed        = "киоск не работает в выбранную дату"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrKioskNotFound):
			h.logger.Warn("POST /bookings - Kiosk not found: kiosk_id=%d", req.KioskID)
			handlers.RespondNotFound(w, msgKioskNotFound)

		case errors.Is(err, createBooking.ErrKioskNotOnline):
			h.logger.Warn("POST /bookings - Kiosk not online: kiosk_id=%d", req.KioskID)
			handlers.RespondConflict(w, msgKioskNotOnline)

		case errors.Is(err, createBooking.ErrClientNotFound):
			h.logger.Warn("POST /bookings - Client not found: client_id=%d", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createBooking.ErrMediaNotFound):
			h.logger.Warn("POST /bookings - Media not found: media_id=%d", req.MediaID)
			handlers.RespondNotFound(w, msgMediaNotFound)

		case errors.Is(err, createBooking.ErrMediaOwnership):
			h.logger.Warn("POST /bookings - Media ownership mismatch: client_id=%d, media_id=%d",
				req.ClientID, req.MediaID)
			handlers.RespondForbidden(w, msgMediaOwnership)

		case errors.Is(err, createBooking.ErrValidation):
			h.logger.Warn("POST /bookings - Validation failed: kiosk_id=%d, error=%v", req.KioskID, err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		case errors.Is(err, createBooking.ErrInvalidSlot):
			h.logger.Warn("POST /bookings - Invalid slot: kiosk_id=%d, slot=%s", req.KioskID, req.SlotStart)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createBooking.ErrKioskClosed):
			h.logger.Warn("POST /bookings - Kiosk closed: kiosk_id=%d, date=%s", req.KioskID, req.Date)
			handlers.RespondBadRequest(w, msgKioskClosed)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: kiosk_id=%d, client_id=%d, error=%v",
				req.KioskID, req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, kiosk_id=%d, client_id=%d",
		result.ID, req.KioskID, req.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
