package get_property_bookings

import (
	"context"

	"github.com/stayfinder/SF-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetPropertyReservations(ctx context.Context, req *models.GetPropertyReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
