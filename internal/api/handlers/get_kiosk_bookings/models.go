package get_kiosk_bookings

import (
	"time"

	"github.com/m04kA/ADS-BookingService/internal/domain"
	"github.com/m04kA/ADS-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из параметров HTTP запроса
func ToServiceRequest(kioskID int64, startDateStr, endDateStr, statusStr string, includeRecalled bool) (*models.GetKioskBookingsRequest, error) {
	req := &models.GetKioskBookingsRequest{
		KioskID:         kioskID,
		IncludeRecalled: includeRecalled,
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
