package models

import "time"

// BookingStatus статус бронирования. Переходы только вперед:
// pending -> confirmed -> completed, откаты запрещены.
type BookingStatus string

// Возможные статусы бронирования.
const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
)

// Rank возвращает порядковый номер статуса для проверки направления перехода.
// Неизвестный статус получает отрицательный ранг.
func (s BookingStatus) Rank() int {
	switch s {
	case BookingPending:
		return 0
	case BookingConfirmed:
		return 1
	case BookingCompleted:
		return 2
	default:
		return -1
	}
}

// Booking подтвержденная транзакция между владельцем и исполнителем.
// После создания неизменяема, кроме статуса. Производные поля всегда
// удовлетворяют равенству TotalAmount == PlatformFee + WalkerEarnings.
type Booking struct {
	ID             string        `json:"id"`
	WalkerID       string        `json:"walker_id"`
	OwnerName      string        `json:"owner_name"`
	DogID          string        `json:"dog_id"`
	DogName        string        `json:"dog_name"`
	ServiceType    string        `json:"service_type"`
	StartTime      time.Time     `json:"start_time"`
	TotalAmount    float64       `json:"total_amount"`
	PlatformFee    float64       `json:"platform_fee"`
	WalkerEarnings float64       `json:"walker_earnings"`
	Status         BookingStatus `json:"status"`
}

// DummyBooking используется для приёма данных бронирования из JSON-запроса.
type DummyBooking struct {
	WalkerID    string  `json:"walker_id" validate:"required"`
	DogID       string  `json:"dog_id" validate:"required"`
	DogName     string  `json:"dog_name" validate:"required"`
	ServiceType string  `json:"service_type" validate:"required"`
	StartTime   string  `json:"start_time" validate:"required"`
	TotalAmount float64 `json:"total_amount" validate:"required,gt=0"`
}

// DummyBookingStatus запрос на смену статуса бронирования.
type DummyBookingStatus struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed"`
}

// RevenueReport сводка выручки платформы из четырех независимых потоков:
// комиссии с бронирований, фиксированные сборы за продвижение бизнесов,
// фиксированные сборы за дополнение акций и выручка подписок владельцев.
type RevenueReport struct {
	CommissionTotal  float64 `json:"commission_total"`
	PromotionRevenue float64 `json:"promotion_revenue"`
	AddonRevenue     float64 `json:"addon_revenue"`
	OwnerRevenue     float64 `json:"owner_revenue"`
	Total            float64 `json:"total"`
}
