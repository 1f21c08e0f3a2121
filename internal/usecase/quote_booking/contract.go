package quote_booking

import (
	"context"
	"time"

	"github.com/stayfinder/SF-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
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
