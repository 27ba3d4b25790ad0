package recall_bookings

// Request модель запроса на пакетный отзыв бронирований
type Request struct {
	BookingIDs []int64 // ID отзываемых бронирований, до 100 за раз
	Reason     string  // Причина отзыва, видна в журнале бронирований
	Confirm    bool    // Явное подтверждение оператора
}

// Response модель ответа пакетного отзыва
type Response struct {
	BatchID            string  // uuid пачки, общий для всех команд остановки
	RecalledIDs        []int64 // Бронирования, переведенные в recalled этой операцией
	AlreadyRecalledIDs []int64 // Бронирования, уже отозванные ранее (идемпотентность)
}
