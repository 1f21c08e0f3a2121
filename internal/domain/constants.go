package domain

// Default booking constraints
const (
	DefaultMinimumStayNights = 1
)

// Business validation constants
const (
	MinGuests                   = 1
	MaxGuests                   = 50
	MinStayNights               = 1
	MaxStayNights               = 365
	MaxCancellationReasonLength = 500
	MaxReferenceAttempts        = 3
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses список статусов, которые занимают даты объекта.
// Используется при проверке пересечений бронирований.
var BlockingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
