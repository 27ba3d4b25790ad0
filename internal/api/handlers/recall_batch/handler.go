package recall_batch

import (
	"errors"
	"net/http"

	"github.com/m04kA/ADS-BookingService/internal/api/handlers"
	recallBookings "github.com/m04kA/ADS-BookingService/internal/usecase/recall_bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgConfirmRequired    = "требуется подтверждение отзыва"
	msgValidationFailed   = "некорректные параметры отзыва"
	msgBookingNotFound    = "одно из бронирований не найдено, пачка отклонена"
	msgAlreadyCompleted   = "одно из бронирований уже завершено, пачка отклонена"
)

type Handler struct {
	useCase RecallBookingsUseCase
	logger  Logger
}

func NewHandler(useCase RecallBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/recalls
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RecallBatchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /recalls - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, recallBookings.ErrConfirmationRequired):
			h.logger.Warn("POST /recalls - Missing confirmation: batch_size=%d", len(req.BookingIDs))
			handlers.RespondBadRequest(w, msgConfirmRequired)

		case errors.Is(err, recallBookings.ErrValidation):
			h.logger.Warn("POST /recalls - Validation failed: batch_size=%d, error=%v", len(req.BookingIDs), err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		case errors.Is(err, recallBookings.ErrBookingNotFound):
			h.logger.Warn("POST /recalls - Booking not found: batch_size=%d, error=%v", len(req.BookingIDs), err)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, recallBookings.ErrAlreadyCompleted):
			h.logger.Warn("POST /recalls - Booking already completed: batch_size=%d, error=%v",
				len(req.BookingIDs), err)
			handlers.RespondConflict(w, msgAlreadyCompleted)

		default:
			h.logger.Error("POST /recalls - Failed to recall batch: batch_size=%d, error=%v",
				len(req.BookingIDs), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /recalls - Batch recalled successfully: batch_id=%s, recalled=%d, already_recalled=%d",
		result.BatchID, len(result.RecalledIDs), len(result.AlreadyRecalledIDs))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
