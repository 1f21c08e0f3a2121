package propertyservice

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект не найден в каталоге
	ErrPropertyNotFound = errors.New("property not found")

	// ErrPropertyNotBookable возвращается, когда объект не принимает бронирования
	// (не прошёл модерацию или заблокирован)
	ErrPropertyNotBookable = errors.New("property is not bookable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("propertyservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("propertyservice client: invalid response")
)
