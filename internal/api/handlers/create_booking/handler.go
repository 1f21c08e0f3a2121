package create_booking

import (
	"errors"
	"net/http"

	"github.com/stayfinder/SF-BookingService/internal/api/handlers"
	"github.com/stayfinder/SF-BookingService/internal/api/middleware"
	createBooking "github.com/stayfinder/SF-BookingService/internal/usecase/create_booking"
)

const (
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInterval     = "некорректный интервал дат"
	msgInvalidGuestCount   = "некорректное количество гостей"
	msgTooManyGuests       = "количество гостей превышает вместимость объекта"
	msgInvalidInput        = "некорректные параметры запроса"
	msgPropertyNotFound    = "объект размещения не найден"
	msgPropertyNotBookable = "объект размещения недоступен для бронирования"
	msgStayTooShort        = "длительность проживания меньше минимальной"
	msgStayTooLong         = "длительность проживания больше максимальной"
	msgOutsideWindow       = "даты вне окна доступности объекта"
	msgDateConflict        = "выбранные даты уже заняты"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrDateConflict):
			h.logger.Warn("POST /bookings - Date conflict: user_id=%d, property_id=%d", userID, req.PropertyID)
			handlers.RespondError(w, http.StatusConflict, msgDateConflict)

		case errors.Is(err, createBooking.ErrPropertyNotFound):
			h.logger.Warn("POST /bookings - Property not found: property_id=%d", req.PropertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, createBooking.ErrPropertyNotBookable):
			h.logger.Warn("POST /bookings - Property not bookable: property_id=%d", req.PropertyID)
			handlers.RespondBadRequest(w, msgPropertyNotBookable)

		case errors.Is(err, createBooking.ErrStayTooShort):
			h.logger.Warn("POST /bookings - Stay too short: user_id=%d, property_id=%d", userID, req.PropertyID)
			handlers.RespondBadRequest(w, msgStayTooShort)

		case errors.Is(err, createBooking.ErrStayTooLong):
			h.logger.Warn("POST /bookings - Stay too long: user_id=%d, property_id=%d", userID, req.PropertyID)
			handlers.RespondBadRequest(w, msgStayTooLong)

		case errors.Is(err, createBooking.ErrOutsideAvailabilityWindow):
			h.logger.Warn("POST /bookings - Outside availability window: user_id=%d, property_id=%d", userID, req.PropertyID)
			handlers.RespondBadRequest(w, msgOutsideWindow)

		case errors.Is(err, createBooking.ErrInvalidInterval):
			h.logger.Warn("POST /bookings - Invalid interval: user_id=%d, property_id=%d", userID, req.PropertyID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrInvalidGuestCount):
			h.logger.Warn("POST /bookings - Invalid guest count: user_id=%d, guests=%d", userID, req.Guests)
			handlers.RespondBadRequest(w, msgInvalidGuestCount)

		case errors.Is(err, createBooking.ErrTooManyGuests):
			h.logger.Warn("POST /bookings - Too many guests: user_id=%d, property_id=%d, guests=%d",
				userID, req.PropertyID, req.Guests)
			handlers.RespondBadRequest(w, msgTooManyGuests)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, property_id=%d, error=%v",
				userID, req.PropertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	// Повторный запрос с тем же idempotency key возвращает существующее
	// бронирование со статусом 200
	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, reference=%s, user_id=%d, property_id=%d",
		result.ID, result.BookingReference, userID, req.PropertyID)
	handlers.RespondJSON(w, status, response)
}
