package offers

import (
	"context"

	"github.com/stayfinder/SF-BookingService/internal/domain"
)

// OfferRepository интерфейс репозитория офферов
type OfferRepository interface {
	Create(ctx context.Context, offer *domain.Offer) (*domain.Offer, error)
	GetByID(ctx context.Context, id int64) (*domain.Offer, error)
	GetByCode(ctx context.Context, code string) (*domain.Offer, error)
	Update(ctx context.Context, offer *domain.Offer) error
	Deactivate(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
