package get_offer

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stayfinder/SF-BookingService/internal/api/handlers"
	"github.com/stayfinder/SF-BookingService/internal/service/offers"
)

const (
	msgMissingCode  = "отсутствует код оффера"
	msgNotFound     = "оффер не найден"
	msgInvalidInput = "некорректные параметры запроса"
)

type Handler struct {
	service OfferService
	logger  Logger
}

func NewHandler(service OfferService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/offers/{code}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := vars["code"]
	if code == "" {
		h.logger.Warn("GET /offers/{code} - Missing code")
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	result, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, offers.ErrOfferNotFound):
			h.logger.Warn("GET /offers/{code} - Offer not found: code=%s", code)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, offers.ErrInvalidInput):
			h.logger.Warn("GET /offers/{code} - Invalid input: code=%s, error=%v", code, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /offers/{code} - Failed to get offer: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /offers/{code} - Offer retrieved: offer_id=%d, code=%s", result.ID, result.Code)
	handlers.RespondJSON(w, http.StatusOK, result)
}
