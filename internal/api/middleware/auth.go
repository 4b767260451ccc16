package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

// TechnicianIDHeader заголовок с идентификатором аутентифицированного техника
// Проставляется шлюзом после проверки сессии
const TechnicianIDHeader = "X-Technician-ID"

type contextKey string

const technicianIDKey contextKey = "technicianID"

// Auth проверяет наличие идентификатора техника и кладет его в контекст
// Все мутации слотов выполняются только от имени аутентифицированного техника
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(TechnicianIDHeader)
		if header == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+TechnicianIDHeader)
			return
		}

		technicianID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || technicianID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный идентификатор техника")
			return
		}

		ctx := context.WithValue(r.Context(), technicianIDKey, technicianID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TechnicianID извлекает идентификатор техника из контекста запроса
func TechnicianID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(technicianIDKey).(int64)
	return id, ok
}
