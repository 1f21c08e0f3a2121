package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrDateConflict возвращается, когда даты пересекаются с другим активным
	// бронированием объекта (exclusion constraint reservations_no_overlap)
	ErrDateConflict = errors.New("reservation.repository: dates conflict with an existing reservation")

	// ErrDuplicateReference возвращается при коллизии booking_reference
	ErrDuplicateReference = errors.New("reservation.repository: duplicate booking reference")

	// ErrDuplicateIdempotencyKey возвращается при повторной вставке с тем же idempotency key
	ErrDuplicateIdempotencyKey = errors.New("reservation.repository: duplicate idempotency key")

	// ErrNotPending возвращается, когда бронирование уже не в статусе pending
	ErrNotPending = errors.New("reservation.repository: reservation is not pending")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
