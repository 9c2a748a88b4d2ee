package schedule

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazalurrehmanAI/hospital-receptionist/pkg/logging"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	svc, _, _ := newTestService(t, seedSlots())
	h := NewHandler(svc, logging.New("error"))

	r := chi.NewRouter()
	r.Post("/api/book-appointment", h.Book)
	r.Post("/api/cancel-appointment", h.Cancel)
	r.Post("/api/reschedule-slots", h.RescheduleSlots)
	r.Post("/api/reschedule-appointment", h.Reschedule)
	r.Get("/api/available-slots", h.AvailableSlots)
	r.Get("/api/appointments/{name}", h.Appointments)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec, payload
}

func TestBookHandler_MissingFields(t *testing.T) {
	router := newTestRouter(t)

	rec, payload := doJSON(t, router, http.MethodPost, "/api/book-appointment", `{"doctor_name":"Dr. Smith"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required field: patient_id", payload["message"])

	rec, payload = doJSON(t, router, http.MethodPost, "/api/book-appointment", `{"patient_id":"P001"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required field: doctor_name", payload["message"])
}

func TestBookHandler_PaymentRequired(t *testing.T) {
	router := newTestRouter(t)

	rec, payload := doJSON(t, router, http.MethodPost, "/api/book-appointment",
		`{"patient_id":"P001","doctor_name":"Dr. Smith"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, payload["success"])
	assert.Contains(t, payload["payment_details"], "Bank Account")
}

func TestBookHandler_Success(t *testing.T) {
	router := newTestRouter(t)

	rec, payload := doJSON(t, router, http.MethodPost, "/api/book-appointment",
		`{"patient_id":"P001","doctor_name":"Dr. Smith","payment_confirmed":true}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])
	appt, ok := payload["appointment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Dr. Smith", appt["doctor"])
}

func TestBookHandler_NoMatchIsBadRequest(t *testing.T) {
	router := newTestRouter(t)

	rec, payload := doJSON(t, router, http.MethodPost, "/api/book-appointment",
		`{"patient_id":"P001","doctor_name":"Dr. Zzyzx","payment_confirmed":true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, payload["success"])
}

func TestCancelHandler(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/book-appointment",
		`{"patient_id":"P001","doctor_name":"Dr. Smith","payment_confirmed":true}`)

	rec, payload := doJSON(t, router, http.MethodPost, "/api/cancel-appointment", `{"name":"Ayesha Khan"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])

	rec, _ = doJSON(t, router, http.MethodPost, "/api/cancel-appointment", `{"name":"Ayesha Khan"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/cancel-appointment", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRescheduleSlotsHandler_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec, payload := doJSON(t, router, http.MethodPost, "/api/reschedule-slots",
		`{"name":"Ayesha Khan","doctor_name":""}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No previous appointment found to reschedule", payload["message"])
}

func TestRescheduleHandler(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/book-appointment",
		`{"patient_id":"P001","doctor_name":"Dr. Smith","payment_confirmed":true}`)

	rec, payload := doJSON(t, router, http.MethodPost, "/api/reschedule-appointment",
		`{"name":"Ayesha Khan","slot_index":0}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])

	rec, payload = doJSON(t, router, http.MethodPost, "/api/reschedule-appointment",
		`{"name":"Ayesha Khan","slot_index":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid slot selection", payload["message"])

	rec, _ = doJSON(t, router, http.MethodPost, "/api/reschedule-appointment", `{"name":"Ayesha Khan"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailableSlotsHandler(t *testing.T) {
	router := newTestRouter(t)

	rec, payload := doJSON(t, router, http.MethodGet, "/api/available-slots", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	slots, ok := payload["available_slots"].([]any)
	require.True(t, ok)
	assert.Len(t, slots, 4)
}

func TestAppointmentsHandler(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/appointments/Nobody%20Home", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	doJSON(t, router, http.MethodPost, "/api/book-appointment",
		`{"patient_id":"P001","doctor_name":"Dr. Khan","payment_confirmed":true}`)

	rec, payload := doJSON(t, router, http.MethodGet, "/api/appointments/Ayesha%20Khan", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	appts, ok := payload["appointments"].([]any)
	require.True(t, ok)
	assert.Len(t, appts, 1)
}
