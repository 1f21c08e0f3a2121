package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayfinder/SF-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID         int64      // ID гостя
	PropertyID     int64      // ID объекта размещения
	CheckIn        time.Time  // Дата заезда (без времени)
	CheckOut       time.Time  // Дата выезда, не входит в проживание
	Guests         int        // Количество гостей
	OfferCode      *string    // Код оффера/купона (опционально)
	IdempotencyKey string     // Клиентский UUID для идемпотентного повтора
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64
	BookingReference string
	PropertyID       int64
	UserID           int64
	CheckIn          time.Time
	CheckOut         time.Time
	Guests           int
	Status           string

	// Расчёт стоимости
	Nights          int
	BaseTotal       decimal.Decimal
	CleaningFee     decimal.Decimal
	SecurityDeposit decimal.Decimal
	DiscountAmount  decimal.Decimal
	GrandTotal      decimal.Decimal

	// Информация о применении оффера. Невалидный оффер не блокирует
	// бронирование, но клиенту сообщается причина
	OfferApplied     bool
	OfferRejectReason string

	// true, если бронирование с этим idempotency key уже существовало
	AlreadyExisted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func responseFromReservation(res *domain.Reservation, offerApplied bool, rejectReason domain.OfferRejectReason, alreadyExisted bool) *Response {
	return &Response{
		ID:                res.ID,
		BookingReference:  res.BookingReference,
		PropertyID:        res.PropertyID,
		UserID:            res.UserID,
		CheckIn:           res.Interval.CheckIn,
		CheckOut:          res.Interval.CheckOut,
		Guests:            res.Guests,
		Status:            string(res.Status),
		Nights:            res.Nights,
		BaseTotal:         res.BaseTotal,
		CleaningFee:       res.CleaningFee,
		SecurityDeposit:   res.SecurityDeposit,
		DiscountAmount:    res.DiscountAmount,
		GrandTotal:        res.GrandTotal,
		OfferApplied:      offerApplied,
		OfferRejectReason: string(rejectReason),
		AlreadyExisted:    alreadyExisted,
		CreatedAt:         res.CreatedAt,
		UpdatedAt:         res.UpdatedAt,
	}
}
