package create_booking

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/stayfinder/SF-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Интервал дат нормализуется и возвращается для дальнейших проверок.
func validateRequest(req *Request) (domain.DateInterval, error) {
	if req.UserID <= 0 {
		return domain.DateInterval{}, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.PropertyID <= 0 {
		return domain.DateInterval{}, fmt.Errorf("%w: propertyID must be positive", ErrInvalidInput)
	}

	if req.Guests < domain.MinGuests || req.Guests > domain.MaxGuests {
		return domain.DateInterval{}, fmt.Errorf("%w: guests must be between %d and %d",
			ErrInvalidGuestCount, domain.MinGuests, domain.MaxGuests)
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return domain.DateInterval{}, fmt.Errorf("%w: check-in and check-out dates are required", ErrInvalidInput)
	}

	// Клиент обязан передавать idempotency key, иначе повтор запроса
	// после таймаута может создать дубль бронирования
	if _, err := uuid.Parse(req.IdempotencyKey); err != nil {
		return domain.DateInterval{}, fmt.Errorf("%w: idempotencyKey must be a valid UUID", ErrInvalidInput)
	}

	if req.OfferCode != nil && *req.OfferCode == "" {
		return domain.DateInterval{}, fmt.Errorf("%w: offerCode must not be empty", ErrInvalidInput)
	}

	candidate, err := domain.NewDateInterval(req.CheckIn, req.CheckOut)
	if err != nil {
		return domain.DateInterval{}, ErrInvalidInterval
	}

	return candidate, nil
}

// mapStayError конвертирует доменные ошибки проверки проживания
// в ошибки usecase
func mapStayError(err error) error {
	switch {
	case errors.Is(err, domain.ErrStayTooShort):
		return ErrStayTooShort
	case errors.Is(err, domain.ErrStayTooLong):
		return ErrStayTooLong
	case errors.Is(err, domain.ErrOutsideAvailabilityWindow):
		return ErrOutsideAvailabilityWindow
	case errors.Is(err, domain.ErrInvalidInterval):
		return ErrInvalidInterval
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
