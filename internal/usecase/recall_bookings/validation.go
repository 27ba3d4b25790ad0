package recall_bookings

import (
	"fmt"

	"github.com/m04kA/ADS-BookingService/internal/domain"
)

// validateRequest проверяет корректность запроса на отзыв
func validateRequest(req *Request) error {
	if !req.Confirm {
		return ErrConfirmationRequired
	}

	if len(req.BookingIDs) == 0 {
		return fmt.Errorf("%w: bookingIDs is required", ErrValidation)
	}

	if len(req.BookingIDs) > domain.MaxRecallBatchSize {
		return fmt.Errorf("%w: batch size %d exceeds limit %d",
			ErrValidation, len(req.BookingIDs), domain.MaxRecallBatchSize)
	}

	seen := make(map[int64]struct{}, len(req.BookingIDs))
	for _, id := range req.BookingIDs {
		if id <= 0 {
			return fmt.Errorf("%w: booking id must be positive", ErrValidation)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate booking id %d", ErrValidation, id)
		}
		seen[id] = struct{}{}
	}

	if req.Reason == "" {
		return fmt.Errorf("%w: reason is required", ErrValidation)
	}
	if len(req.Reason) > domain.MaxRecallReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrValidation, domain.MaxRecallReasonLength)
	}

	return nil
}
