package quote_booking

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект не найден в каталоге
	ErrPropertyNotFound = errors.New("quote_booking: property not found")

	// ErrPropertyNotBookable возвращается, когда объект не принимает бронирования
	ErrPropertyNotBookable = errors.New("quote_booking: property is not bookable")

	// ErrInvalidInterval возвращается, когда дата выезда не позже даты заезда
	ErrInvalidInterval = errors.New("quote_booking: check-out must be after check-in")

	// ErrInvalidGuestCount возвращается при некорректном количестве гостей
	ErrInvalidGuestCount = errors.New("quote_booking: invalid guest count")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_booking: internal error")
)
