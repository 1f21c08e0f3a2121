package create_offer

import (
	"context"

	"github.com/stayfinder/SF-BookingService/internal/service/offers/models"
)

type OfferService interface {
	Create(ctx context.Context, req *models.CreateOfferRequest) (*models.OfferResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
