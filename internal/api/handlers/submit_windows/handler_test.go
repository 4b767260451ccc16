package submit_windows

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	submitWindows "github.com/m04kA/SMC-AvailabilityService/internal/usecase/submit_windows"
)

type fakeUseCase struct {
	resp *submitWindows.Response
	err  error

	gotReq *submitWindows.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *submitWindows.Request) (*submitWindows.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc *fakeUseCase, body string, technicianID string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, nopLogger{})

	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/availability/windows", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/windows", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if technicianID != "" {
		req.Header.Set(middleware.TechnicianIDHeader, technicianID)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_SubmitWindows_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &submitWindows.Response{
		Created: []submitWindows.Slot{
			{
				ID:           1,
				TechnicianID: 42,
				Date:         time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
				StartTime:    "09:00",
				EndTime:      "12:00",
				Status:       "open",
			},
		},
		Duplicates: []submitWindows.Slot{},
	}}

	body := `{"dates":["10-03-2026"],"startTime":"09:00","endTime":"12:00"}`
	rec := doRequest(t, uc, body, "42")
	require.Equal(t, http.StatusCreated, rec.Code)

	// Запрос распарсен: DD-MM-YYYY даты и HH:MM время, техник из заголовка
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(42), uc.gotReq.TechnicianID)
	require.Len(t, uc.gotReq.Dates, 1)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), uc.gotReq.Dates[0])

	var resp SubmitWindowsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Created, 1)
	assert.Equal(t, "10-03-2026", resp.Created[0].Date)
	assert.Equal(t, "09:00", resp.Created[0].StartTime)
	assert.Equal(t, "open", resp.Created[0].Status)
	assert.Empty(t, resp.SkippedDates)
}

func TestHandler_SubmitWindows_MissingAuthHeader(t *testing.T) {
	body := `{"dates":["10-03-2026"],"startTime":"09:00","endTime":"12:00"}`
	rec := doRequest(t, &fakeUseCase{}, body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_SubmitWindows_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"dates":`},
		{name: "unknown field", body: `{"dates":["10-03-2026"],"startTime":"09:00","endTime":"12:00","extra":1}`},
		{name: "bad date format", body: `{"dates":["2026-03-10"],"startTime":"09:00","endTime":"12:00"}`},
		{name: "bad time format", body: `{"dates":["10-03-2026"],"startTime":"9am","endTime":"12:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{}, tt.body, "42")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_SubmitWindows_UseCaseErrorMapping(t *testing.T) {
	body := `{"dates":["10-03-2026"],"startTime":"09:00","endTime":"12:00"}`

	tests := []struct {
		name       string
		useCaseErr error
		wantStatus int
	}{
		{name: "too many dates", useCaseErr: submitWindows.ErrTooManyDates, wantStatus: http.StatusBadRequest},
		{name: "invalid window", useCaseErr: submitWindows.ErrInvalidWindow, wantStatus: http.StatusBadRequest},
		{name: "invalid input", useCaseErr: submitWindows.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal error", useCaseErr: submitWindows.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tt.useCaseErr}, body, "42")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
