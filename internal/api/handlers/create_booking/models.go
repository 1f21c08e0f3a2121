package create_booking

import (
	"time"

	"github.com/stayfinder/SF-BookingService/internal/domain"
	createBooking "github.com/stayfinder/SF-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PropertyID     int64   `json:"propertyId"`
	CheckIn        string  `json:"checkIn"`  // "2026-07-01"
	CheckOut       string  `json:"checkOut"` // "2026-07-08"
	Guests         int     `json:"guests"`
	OfferCode      *string `json:"offerCode,omitempty"`
	IdempotencyKey string  `json:"idempotencyKey"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64  `json:"id"`
	BookingReference string `json:"bookingReference"`
	PropertyID       int64  `json:"propertyId"`
	UserID           int64  `json:"userId"`
	CheckIn          string `json:"checkIn"`
	CheckOut         string `json:"checkOut"`
	Guests           int    `json:"guests"`
	Status           string `json:"status"`

	Nights          int    `json:"nights"`
	BaseTotal       string `json:"baseTotal"`
	CleaningFee     string `json:"cleaningFee"`
	SecurityDeposit string `json:"securityDeposit"`
	DiscountAmount  string `json:"discountAmount"`
	GrandTotal      string `json:"grandTotal"`

	OfferApplied      bool   `json:"offerApplied"`
	OfferRejectReason string `json:"offerRejectReason,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	checkIn, err := time.Parse(domain.DateFormat, r.CheckIn)
	if err != nil {
		return nil, err
	}

	checkOut, err := time.Parse(domain.DateFormat, r.CheckOut)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:         userID,
		PropertyID:     r.PropertyID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Guests:         r.Guests,
		OfferCode:      r.OfferCode,
		IdempotencyKey: r.IdempotencyKey,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                resp.ID,
		BookingReference:  resp.BookingReference,
		PropertyID:        resp.PropertyID,
		UserID:            resp.UserID,
		CheckIn:           resp.CheckIn.Format(domain.DateFormat),
		CheckOut:          resp.CheckOut.Format(domain.DateFormat),
		Guests:            resp.Guests,
		Status:            resp.Status,
		Nights:            resp.Nights,
		BaseTotal:         resp.BaseTotal.StringFixed(2),
		CleaningFee:       resp.CleaningFee.StringFixed(2),
		SecurityDeposit:   resp.SecurityDeposit.StringFixed(2),
		DiscountAmount:    resp.DiscountAmount.StringFixed(2),
		GrandTotal:        resp.GrandTotal.StringFixed(2),
		OfferApplied:      resp.OfferApplied,
		OfferRejectReason: resp.OfferRejectReason,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}
