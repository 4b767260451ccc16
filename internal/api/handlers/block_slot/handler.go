package block_slot

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
	msgSlotBooked    = "слот занят клиентом, блокировка невозможна"
	msgCannotBlock   = "слот нельзя заблокировать из текущего статуса"
	msgConflict      = "слот был изменён параллельно, повторите запрос"
	msgUnauthorized  = "техник не аутентифицирован"
)

// BlockSlotResponse HTTP response model
type BlockSlotResponse struct {
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

// Handle PATCH /api/v1/availability/slots/{slotId}/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	technicianID, ok := middleware.TechnicianID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /availability/slots/{id}/block - Missing technician identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /availability/slots/{id}/block - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	slot, err := h.service.Block(r.Context(), slotID, technicianID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PATCH /availability/slots/{id}/block - Slot not found: slot_id=%d, technician_id=%d",
				slotID, technicianID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrSlotBooked):
			h.logger.Warn("PATCH /availability/slots/{id}/block - Slot booked: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotBooked)

		case errors.Is(err, slots.ErrInvalidTransition):
			h.logger.Warn("PATCH /availability/slots/{id}/block - Invalid transition: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgCannotBlock)

		case errors.Is(err, slots.ErrConflict):
			h.logger.Warn("PATCH /availability/slots/{id}/block - Concurrent modification: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /availability/slots/{id}/block - Failed to block slot: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /availability/slots/{id}/block - Slot blocked: slot_id=%d, technician_id=%d",
		slotID, technicianID)
	handlers.RespondJSON(w, http.StatusOK, BlockSlotResponse{Slot: slot})
}
