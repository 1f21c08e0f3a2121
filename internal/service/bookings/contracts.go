package bookings

import (
	"context"

	"github.com/stayfinder/SF-BookingService/internal/domain"
	"github.com/stayfinder/SF-BookingService/internal/integrations/propertyservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByReference(ctx context.Context, reference string) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByPropertyWithFilter(ctx context.Context, filter domain.PropertyReservationsFilter) ([]*domain.Reservation, error)
	ConfirmPending(ctx context.Context, id int64) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// OfferRepository интерфейс репозитория офферов
type OfferRepository interface {
	IncrementUsage(ctx context.Context, id int64) error
}

// PropertyServiceClient интерфейс клиента для PropertyService
type PropertyServiceClient interface {
	GetProperty(ctx context.Context, propertyID int64) (*propertyservice.Property, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
