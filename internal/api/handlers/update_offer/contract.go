package update_offer

import (
	"context"

	"github.com/stayfinder/SF-BookingService/internal/service/offers/models"
)

type OfferService interface {
	Update(ctx context.Context, id int64, req *models.UpdateOfferRequest) (*models.OfferResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
