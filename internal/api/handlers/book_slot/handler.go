package book_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "слот не найден"
	msgNotOpen            = "слот недоступен для бронирования"
	msgConflict           = "слот был изменён параллельно, повторите запрос"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /internal/slots/{slotId}/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /internal/slots/{id}/book - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req BookSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /internal/slots/{id}/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.CustomerID <= 0 {
		h.logger.Warn("PATCH /internal/slots/{id}/book - Invalid customer ID: %d", req.CustomerID)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.service.Book(r.Context(), slotID, req.CustomerID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PATCH /internal/slots/{id}/book - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrInvalidTransition):
			h.logger.Warn("PATCH /internal/slots/{id}/book - Slot not open: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgNotOpen)

		case errors.Is(err, slots.ErrConflict):
			h.logger.Warn("PATCH /internal/slots/{id}/book - Concurrent modification: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /internal/slots/{id}/book - Failed to book slot: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /internal/slots/{id}/book - Slot booked: slot_id=%d, customer_id=%d",
		slotID, req.CustomerID)
	handlers.RespondJSON(w, http.StatusOK, BookSlotResponse{Slot: slot})
}
