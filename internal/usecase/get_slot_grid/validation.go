package get_slot_grid

import (
	"fmt"

	"github.com/m04kA/ADS-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.KioskID <= 0 {
		return fmt.Errorf("%w: kioskID must be positive", ErrInvalidInput)
	}

	if req.FromDate.IsZero() || req.ToDate.IsZero() {
		return fmt.Errorf("%w: date range is required", ErrInvalidInput)
	}

	if req.ToDate.Before(req.FromDate) {
		return fmt.Errorf("%w: toDate is before fromDate", ErrInvalidRange)
	}

	days := int(req.ToDate.Sub(req.FromDate).Hours()/24) + 1
	if days > domain.MaxGridRangeDays {
		return fmt.Errorf("%w: range covers %d days, limit is %d", ErrRangeTooWide, days, domain.MaxGridRangeDays)
	}

	return validateSlotDuration(req.SlotDurationSeconds)
}

// validateSlotDuration проверяет длительность слота
// Сетка считается в минутных границах, поэтому длительность должна быть
// кратна 60 секундам
func validateSlotDuration(seconds int) error {
	if seconds < domain.MinSlotDurationSeconds || seconds > domain.MaxSlotDurationSeconds {
		return fmt.Errorf("%w: duration %ds is outside [%d, %d]",
			ErrInvalidSlotDuration, seconds, domain.MinSlotDurationSeconds, domain.MaxSlotDurationSeconds)
	}
	if seconds%60 != 0 {
		return fmt.Errorf("%w: duration %ds is not a whole number of minutes", ErrInvalidSlotDuration, seconds)
	}
	return nil
}
