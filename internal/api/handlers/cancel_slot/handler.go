package cancel_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots/models"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgNotFound      = "слот не найден"
	msgNotBooked     = "слот не занят, отмена невозможна"
	msgConflict      = "слот был изменён параллельно, повторите запрос"
)

// CancelSlotResponse HTTP response model
type CancelSlotResponse struct {
	Slot *models.SlotResponse `json:"slot"`
}

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

// Handle PATCH /internal/slots/{slotId}/cancel
// Вызывается сервисом бронирования при отмене резервации клиентом
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /internal/slots/{id}/cancel - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	slot, err := h.service.Cancel(r.Context(), slotID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PATCH /internal/slots/{id}/cancel - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrInvalidTransition):
			h.logger.Warn("PATCH /internal/slots/{id}/cancel - Slot not booked: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgNotBooked)

		case errors.Is(err, slots.ErrConflict):
			h.logger.Warn("PATCH /internal/slots/{id}/cancel - Concurrent modification: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /internal/slots/{id}/cancel - Failed to cancel slot: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /internal/slots/{id}/cancel - Slot released: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, CancelSlotResponse{Slot: slot})
}
