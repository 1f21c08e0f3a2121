package cancel_booking

import (
	"context"

	"github.com/stayfinder/SF-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
