package get_window_options

import (
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

// WindowOptionsResponse HTTP response model
// Лестницы допустимых времен для формы публикации окна
type WindowOptionsResponse struct {
	StartTimeOptions []string `json:"startTimeOptions"`
	EndTimeOptions   []string `json:"endTimeOptions"`
}

type Handler struct {
	catalog WindowCatalog
	logger  Logger
}

func NewHandler(catalog WindowCatalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/window-options
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	startOptions := h.catalog.StartTimeOptions()
	endOptions := h.catalog.EndTimeOptions()

	resp := WindowOptionsResponse{
		StartTimeOptions: make([]string, len(startOptions)),
		EndTimeOptions:   make([]string, len(endOptions)),
	}
	for i, ts := range startOptions {
		resp.StartTimeOptions[i] = ts.String()
	}
	for i, ts := range endOptions {
		resp.EndTimeOptions[i] = ts.String()
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
