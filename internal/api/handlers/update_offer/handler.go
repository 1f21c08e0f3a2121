package update_offer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/stayfinder/SF-BookingService/internal/api/handlers"
	"github.com/stayfinder/SF-BookingService/internal/service/offers"
	"github.com/stayfinder/SF-BookingService/internal/service/offers/models"
)

const (
	msgInvalidOfferID     = "некорректный ID оффера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры оффера"
	msgNotFound           = "оффер не найден"
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

// Handle PATCH /api/v1/offers/{offerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	offerIDStr := vars["offerId"]

	offerID, err := strconv.ParseInt(offerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /offers/{id} - Invalid offer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfferID)
		return
	}

	var req models.UpdateOfferRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /offers/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), offerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, offers.ErrOfferNotFound):
			h.logger.Warn("PATCH /offers/{id} - Offer not found: offer_id=%d", offerID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, offers.ErrInvalidInput):
			h.logger.Warn("PATCH /offers/{id} - Invalid input: offer_id=%d, error=%v", offerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /offers/{id} - Failed to update offer: offer_id=%d, error=%v", offerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /offers/{id} - Offer updated: offer_id=%d, code=%s", result.ID, result.Code)
	handlers.RespondJSON(w, http.StatusOK, result)
}
