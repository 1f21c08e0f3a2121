package create_booking

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект не найден в каталоге
	ErrPropertyNotFound = errors.New("create_booking: property not found")

	// ErrPropertyNotBookable возвращается, когда объект не принимает бронирования
	ErrPropertyNotBookable = errors.New("create_booking: property is not bookable")

	// ErrInvalidInterval возвращается, когда дата выезда не позже даты заезда
	ErrInvalidInterval = errors.New("create_booking: check-out must be after check-in")

	// ErrInvalidGuestCount возвращается при некорректном количестве гостей
	ErrInvalidGuestCount = errors.New("create_booking: invalid guest count")

	// ErrTooManyGuests возвращается, когда гостей больше вместимости объекта
	ErrTooManyGuests = errors.New("create_booking: party exceeds the property capacity")

	// ErrStayTooShort возвращается, когда проживание короче минимального
	ErrStayTooShort = errors.New("create_booking: stay is shorter than the minimum stay")

	// ErrStayTooLong возвращается, когда проживание длиннее максимального
	ErrStayTooLong = errors.New("create_booking: stay is longer than the maximum stay")

	// ErrOutsideAvailabilityWindow возвращается, когда даты вне окна доступности объекта
	ErrOutsideAvailabilityWindow = errors.New("create_booking: dates are outside the availability window")

	// ErrDateConflict возвращается, когда даты пересекаются с другим активным бронированием
	ErrDateConflict = errors.New("create_booking: dates conflict with an existing reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
