package recall_batch

import (
	recallBookings "github.com/m04kA/ADS-BookingService/internal/usecase/recall_bookings"
)

// RecallBatchRequest HTTP request model
type RecallBatchRequest struct {
	BookingIDs []int64 `json:"bookingIds"`
	Reason     string  `json:"reason"`
	Confirm    bool    `json:"confirm"`
}

// RecallBatchResponse HTTP response model
type RecallBatchResponse struct {
	BatchID            string  `json:"batchId"`
	RecalledIDs        []int64 `json:"recalledIds"`
	AlreadyRecalledIDs []int64 `json:"alreadyRecalledIds"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RecallBatchRequest) ToUseCaseRequest() *recallBookings.Request {
	return &recallBookings.Request{
		BookingIDs: r.BookingIDs,
		Reason:     r.Reason,
		Confirm:    r.Confirm,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *recallBookings.Response) *RecallBatchResponse {
	out := &RecallBatchResponse{
		BatchID:            resp.BatchID,
		RecalledIDs:        resp.RecalledIDs,
		AlreadyRecalledIDs: resp.AlreadyRecalledIDs,
	}

	if out.RecalledIDs == nil {
		out.RecalledIDs = []int64{}
	}
	if out.AlreadyRecalledIDs == nil {
		out.AlreadyRecalledIDs = []int64{}
	}

	return out
}
