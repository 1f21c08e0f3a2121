package create_offer

import (
	"errors"
	"net/http"

	"github.com/stayfinder/SF-BookingService/internal/api/handlers"
	"github.com/stayfinder/SF-BookingService/internal/service/offers"
	"github.com/stayfinder/SF-BookingService/internal/service/offers/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры оффера"
	msgDuplicateCode      = "оффер с таким кодом уже существует"
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

// Handle POST /api/v1/offers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOfferRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /offers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, offers.ErrDuplicateCode):
			h.logger.Warn("POST /offers - Duplicate code: code=%s", req.Code)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateCode)

		case errors.Is(err, offers.ErrInvalidInput):
			h.logger.Warn("POST /offers - Invalid input: code=%s, error=%v", req.Code, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /offers - Failed to create offer: code=%s, error=%v", req.Code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /offers - Offer created: offer_id=%d, code=%s", result.ID, result.Code)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
