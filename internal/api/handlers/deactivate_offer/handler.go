package deactivate_offer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/stayfinder/SF-BookingService/internal/api/handlers"
	"github.com/stayfinder/SF-BookingService/internal/service/offers"
)

const (
	msgInvalidOfferID = "некорректный ID оффера"
	msgNotFound       = "оффер не найден"
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

// Handle DELETE /api/v1/offers/{offerId}
// Оффер не удаляется физически, а деактивируется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	offerIDStr := vars["offerId"]

	offerID, err := strconv.ParseInt(offerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /offers/{id} - Invalid offer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfferID)
		return
	}

	if err := h.service.Deactivate(r.Context(), offerID); err != nil {
		switch {
		case errors.Is(err, offers.ErrOfferNotFound):
			h.logger.Warn("DELETE /offers/{id} - Offer not found: offer_id=%d", offerID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /offers/{id} - Failed to deactivate offer: offer_id=%d, error=%v",
				offerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /offers/{id} - Offer deactivated: offer_id=%d", offerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
