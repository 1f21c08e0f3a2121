package models

import (
	"errors"
	"time"

	"github.com/stayfinder/SF-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetPropertyReservationsRequest запрос на получение бронирований объекта.
// Доступен только владельцу объекта (host).
type GetPropertyReservationsRequest struct {
	PropertyID       int64
	UserID           int64
	StartDate        *time.Time
	EndDate          *time.Time
	Status           *string
	IncludeCancelled bool
}

// ToDomainFilter конвертирует запрос в доменный фильтр
func (r *GetPropertyReservationsRequest) ToDomainFilter() (domain.PropertyReservationsFilter, error) {
	filter := domain.PropertyReservationsFilter{
		PropertyID:       r.PropertyID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return domain.PropertyReservationsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse бронирование в ответе сервиса.
// Денежные поля сериализуются строками с двумя знаками после запятой.
type ReservationResponse struct {
	ID                 int64   `json:"id"`
	BookingReference   string  `json:"bookingReference"`
	PropertyID         int64   `json:"propertyId"`
	UserID             int64   `json:"userId"`
	CheckIn            string  `json:"checkIn"`
	CheckOut           string  `json:"checkOut"`
	Guests             int     `json:"guests"`
	Status             string  `json:"status"`
	Nights             int     `json:"nights"`
	BaseTotal          string  `json:"baseTotal"`
	CleaningFee        string  `json:"cleaningFee"`
	SecurityDeposit    string  `json:"securityDeposit"`
	DiscountAmount     string  `json:"discountAmount"`
	GrandTotal         string  `json:"grandTotal"`
	OfferID            *int64  `json:"offerId,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// FromDomainReservation конвертирует доменную модель в ответ сервиса
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:                 res.ID,
		BookingReference:   res.BookingReference,
		PropertyID:         res.PropertyID,
		UserID:             res.UserID,
		CheckIn:            res.Interval.CheckIn.Format(domain.DateFormat),
		CheckOut:           res.Interval.CheckOut.Format(domain.DateFormat),
		Guests:             res.Guests,
		Status:             string(res.Status),
		Nights:             res.Nights,
		BaseTotal:          res.BaseTotal.StringFixed(2),
		CleaningFee:        res.CleaningFee.StringFixed(2),
		SecurityDeposit:    res.SecurityDeposit.StringFixed(2),
		DiscountAmount:     res.DiscountAmount.StringFixed(2),
		GrandTotal:         res.GrandTotal.StringFixed(2),
		OfferID:            res.OfferID,
		CancellationReason: res.CancellationReason,
		CreatedAt:          res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          res.UpdatedAt.Format(time.RFC3339),
	}

	if res.CancelledAt != nil {
		cancelledAt := res.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainReservationList конвертирует список доменных моделей
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	items := make([]*ReservationResponse, len(reservations))
	for i, res := range reservations {
		items[i] = FromDomainReservation(res)
	}

	return &ReservationListResponse{
		Reservations: items,
		Total:        len(items),
	}
}

// ToDomainStatus конвертирует строку в доменный статус
func ToDomainStatus(status string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(status) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted:
		return domain.ReservationStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
