package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// Reservation represents a stay booked for a property.
// Price breakdown fields are denormalized at booking time so the record
// stays stable even if property rates change later.
type Reservation struct {
	ID               int64
	BookingReference string
	PropertyID       int64
	UserID           int64
	Interval         DateInterval
	Guests           int
	Status           ReservationStatus

	// Denormalized price breakdown, fixed at booking time
	Nights          int
	BaseTotal       decimal.Decimal
	CleaningFee     decimal.Decimal
	SecurityDeposit decimal.Decimal
	DiscountAmount  decimal.Decimal
	GrandTotal      decimal.Decimal

	// Offer applied at quote time, consumed on confirmation
	OfferID *int64

	IdempotencyKey string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksDates returns true if the reservation participates in conflict
// checks. Only cancelled reservations free their dates.
func (r *Reservation) BlocksDates() bool {
	return r.Status != StatusCancelled
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the reservation is awaiting confirmation
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == StatusPending
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// PropertyReservationsFilter фильтр для выборки бронирований объекта
type PropertyReservationsFilter struct {
	PropertyID       int64              // Обязательный параметр
	StartDate        *time.Time         // Начало периода (опционально)
	EndDate          *time.Time         // Конец периода (опционально)
	Status           *ReservationStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отменённые бронирования
}
