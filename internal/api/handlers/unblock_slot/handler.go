package unblock_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots/models"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgNotFound      = "слот не найден"
	msgNotBlocked    = "слот не заблокирован, разблокировка невозможна"
	msgConflict      = "слот был изменён параллельно, повторите запрос"
	msgUnauthorized  = "техник не аутентифицирован"
)

// UnblockSlotResponse HTTP response model
type UnblockSlotResponse struct {
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

// Handle PATCH /api/v1/availability/slots/{slotId}/unblock
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	technicianID, ok := middleware.TechnicianID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /availability/slots/{id}/unblock - Missing technician identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /availability/slots/{id}/unblock - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	slot, err := h.service.Unblock(r.Context(), slotID, technicianID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PATCH /availability/slots/{id}/unblock - Slot not found: slot_id=%d, technician_id=%d",
				slotID, technicianID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrInvalidTransition):
			h.logger.Warn("PATCH /availability/slots/{id}/unblock - Invalid transition: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgNotBlocked)

		case errors.Is(err, slots.ErrConflict):
			h.logger.Warn("PATCH /availability/slots/{id}/unblock - Concurrent modification: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /availability/slots/{id}/unblock - Failed to unblock slot: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /availability/slots/{id}/unblock - Slot unblocked: slot_id=%d, technician_id=%d",
		slotID, technicianID)
	handlers.RespondJSON(w, http.StatusOK, UnblockSlotResponse{Slot: slot})
}
