package create_booking

import (
	"context"
	"time"

	"github.com/stayfinder/SF-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Reservation, error)
	GetByPropertyWithFilter(ctx context.Context, filter domain.PropertyReservationsFilter) ([]*domain.Reservation, error)
}

// OfferRepository интерфейс репозитория офферов
type OfferRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Offer, error)
}

// PropertyServiceClient интерфейс клиента для PropertyService
type PropertyServiceClient interface {
	GetBookingSnapshot(ctx context.Context, propertyID int64) (*domain.PropertyAvailability, *domain.PropertyRates, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
