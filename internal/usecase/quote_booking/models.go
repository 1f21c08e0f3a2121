package quote_booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на расчёт стоимости проживания
type Request struct {
	PropertyID int64     // ID объекта размещения
	CheckIn    time.Time // Дата заезда
	CheckOut   time.Time // Дата выезда
	Guests     int       // Количество гостей
	OfferCode  *string   // Код оффера/купона (опционально)
}

// UnavailableReason причина недоступности дат
type UnavailableReason string

const (
	ReasonStayTooShort  UnavailableReason = "stay_too_short"
	ReasonStayTooLong   UnavailableReason = "stay_too_long"
	ReasonOutsideWindow UnavailableReason = "outside_availability_window"
	ReasonDateConflict  UnavailableReason = "date_conflict"
	ReasonTooManyGuests UnavailableReason = "too_many_guests"
)

// Response модель ответа с расчётом стоимости.
// Если даты недоступны, Quote отсутствует и заполнена причина.
type Response struct {
	PropertyID int64
	CheckIn    time.Time
	CheckOut   time.Time

	Available         bool
	UnavailableReason UnavailableReason

	Quote *Quote

	OfferApplied      bool
	OfferRejectReason string
}

// Quote разбивка стоимости проживания
type Quote struct {
	Nights          int
	BaseTotal       decimal.Decimal
	CleaningFee     decimal.Decimal
	SecurityDeposit decimal.Decimal
	DiscountAmount  decimal.Decimal
	GrandTotal      decimal.Decimal
}
