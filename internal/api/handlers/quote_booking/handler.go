package quote_booking

import (
	"errors"
	"net/http"

	"github.com/stayfinder/SF-BookingService/internal/api/handlers"
	quoteBooking "github.com/stayfinder/SF-BookingService/internal/usecase/quote_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParams       = "некорректные параметры запроса"
	msgPropertyNotFound    = "объект размещения не найден"
	msgPropertyNotBookable = "объект размещения недоступен для бронирования"
)

type Handler struct {
	useCase QuoteBookingUseCase
	logger  Logger
}

func NewHandler(useCase QuoteBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/quote
// Недоступность дат - не ошибка: в ответе available=false и причина
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/quote - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quoteBooking.ErrPropertyNotFound):
			h.logger.Warn("POST /bookings/quote - Property not found: property_id=%d", req.PropertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, quoteBooking.ErrPropertyNotBookable):
			h.logger.Warn("POST /bookings/quote - Property not bookable: property_id=%d", req.PropertyID)
			handlers.RespondBadRequest(w, msgPropertyNotBookable)

		case errors.Is(err, quoteBooking.ErrInvalidInterval),
			errors.Is(err, quoteBooking.ErrInvalidGuestCount),
			errors.Is(err, quoteBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/quote - Invalid input: property_id=%d, error=%v", req.PropertyID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /bookings/quote - Failed to compute quote: property_id=%d, error=%v",
				req.PropertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/quote - Quote computed: property_id=%d, available=%t",
		req.PropertyID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
