package get_availability

import (
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	getAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
)

const msgUnauthorized = "техник не аутентифицирован"

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	technicianID, ok := middleware.TechnicianID(r.Context())
	if !ok {
		h.logger.Warn("GET /availability - Missing technician identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		TechnicianID: technicianID,
	})
	if err != nil {
		h.logger.Error("GET /availability - Failed to get availability: technician_id=%d, error=%v",
			technicianID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability - Availability fetched: technician_id=%d, days=%d",
		technicianID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
