package submit_windows

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	submitWindows "github.com/m04kA/SMC-AvailabilityService/internal/usecase/submit_windows"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты (DD-MM-YYYY) или времени (HH:MM)"
	msgInvalidWindow      = "некорректное рабочее окно: конец должен быть позже начала, границы - из каталога"
	msgTooManyDates       = "выбрано слишком много дат"
	msgUnauthorized       = "техник не аутентифицирован"
)

type Handler struct {
	useCase SubmitWindowsUseCase
	logger  Logger
}

func NewHandler(useCase SubmitWindowsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability/windows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	technicianID, ok := middleware.TechnicianID(r.Context())
	if !ok {
		h.logger.Warn("POST /availability/windows - Missing technician identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req SubmitWindowsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/windows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(technicianID)
	if err != nil {
		h.logger.Warn("POST /availability/windows - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitWindows.ErrTooManyDates):
			h.logger.Warn("POST /availability/windows - Too many dates: technician_id=%d", technicianID)
			handlers.RespondBadRequest(w, msgTooManyDates)

		case errors.Is(err, submitWindows.ErrInvalidWindow):
			h.logger.Warn("POST /availability/windows - Invalid window: technician_id=%d", technicianID)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, submitWindows.ErrInvalidInput):
			h.logger.Warn("POST /availability/windows - Invalid input: technician_id=%d, error=%v", technicianID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /availability/windows - Failed to submit windows: technician_id=%d, error=%v",
				technicianID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/windows - Windows submitted: technician_id=%d, created=%d, duplicates=%d",
		technicianID, len(result.Created), len(result.Duplicates))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
