package quote_booking

import (
	"time"

	"github.com/stayfinder/SF-BookingService/internal/domain"
	quoteBooking "github.com/stayfinder/SF-BookingService/internal/usecase/quote_booking"
)

// QuoteBookingRequest HTTP request model
type QuoteBookingRequest struct {
	PropertyID int64   `json:"propertyId"`
	CheckIn    string  `json:"checkIn"`
	CheckOut   string  `json:"checkOut"`
	Guests     int     `json:"guests"`
	OfferCode  *string `json:"offerCode,omitempty"`
}

// QuoteResponse разбивка стоимости в HTTP ответе
type QuoteResponse struct {
	Nights          int    `json:"nights"`
	BaseTotal       string `json:"baseTotal"`
	CleaningFee     string `json:"cleaningFee"`
	SecurityDeposit string `json:"securityDeposit"`
	DiscountAmount  string `json:"discountAmount"`
	GrandTotal      string `json:"grandTotal"`
}

// QuoteBookingResponse HTTP response model
type QuoteBookingResponse struct {
	PropertyID int64  `json:"propertyId"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`

	Available         bool   `json:"available"`
	UnavailableReason string `json:"unavailableReason,omitempty"`

	Quote *QuoteResponse `json:"quote,omitempty"`

	OfferApplied      bool   `json:"offerApplied"`
	OfferRejectReason string `json:"offerRejectReason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteBookingRequest) ToUseCaseRequest() (*quoteBooking.Request, error) {
	checkIn, err := time.Parse(domain.DateFormat, r.CheckIn)
	if err != nil {
		return nil, err
	}

	checkOut, err := time.Parse(domain.DateFormat, r.CheckOut)
	if err != nil {
		return nil, err
	}

	return &quoteBooking.Request{
		PropertyID: r.PropertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     r.Guests,
		OfferCode:  r.OfferCode,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quoteBooking.Response) *QuoteBookingResponse {
	result := &QuoteBookingResponse{
		PropertyID:        resp.PropertyID,
		CheckIn:           resp.CheckIn.Format(domain.DateFormat),
		CheckOut:          resp.CheckOut.Format(domain.DateFormat),
		Available:         resp.Available,
		UnavailableReason: string(resp.UnavailableReason),
		OfferApplied:      resp.OfferApplied,
		OfferRejectReason: resp.OfferRejectReason,
	}

	if resp.Quote != nil {
		result.Quote = &QuoteResponse{
			Nights:          resp.Quote.Nights,
			BaseTotal:       resp.Quote.BaseTotal.StringFixed(2),
			CleaningFee:     resp.Quote.CleaningFee.StringFixed(2),
			SecurityDeposit: resp.Quote.SecurityDeposit.StringFixed(2),
			DiscountAmount:  resp.Quote.DiscountAmount.StringFixed(2),
			GrandTotal:      resp.Quote.GrandTotal.StringFixed(2),
		}
	}

	return result
}
