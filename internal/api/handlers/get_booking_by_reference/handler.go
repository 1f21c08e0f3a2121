package get_booking_by_reference

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stayfinder/SF-BookingService/internal/api/handlers"
	"github.com/stayfinder/SF-BookingService/internal/api/middleware"
	"github.com/stayfinder/SF-BookingService/internal/service/bookings"
)

const (
	msgMissingReference = "отсутствует номер бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/by-reference/{reference}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reference := vars["reference"]
	if reference == "" {
		h.logger.Warn("GET /bookings/by-reference/{reference} - Missing reference")
		handlers.RespondBadRequest(w, msgMissingReference)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/by-reference/{reference} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetByReference(r.Context(), reference, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrReservationNotFound):
			h.logger.Warn("GET /bookings/by-reference/{reference} - Reservation not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/by-reference/{reference} - Access denied: reference=%s, user_id=%d",
				reference, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/by-reference/{reference} - Failed to get reservation: reference=%s, error=%v",
				reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/by-reference/{reference} - Reservation retrieved: reference=%s, user_id=%d",
		reference, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
