package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazalurrehmanAI/hospital-receptionist/internal/doctors"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/faq"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/patients"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/schedule"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/store"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/triage"
	"github.com/fazalurrehmanAI/hospital-receptionist/pkg/logging"
)

type staticAssistant struct{}

func (staticAssistant) Answer(_ context.Context, _ string) (string, error) {
	return "generated", nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	logger := logging.New("error")

	require.NoError(t, store.Save(filepath.Join(dir, "doctors.json"), []doctors.Doctor{
		{Name: "Dr. Smith", Specialization: "Cardiology", Contact: "smith@example.com"},
	}))
	require.NoError(t, store.Save(filepath.Join(dir, "faqs.json"), []faq.FAQ{
		{Question: "What are the visiting hours?", Answer: "9am to 8pm."},
	}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "disease_map.json"),
		[]byte(`{"chest pain": "Cardiology"}`), 0o644))
	require.NoError(t, store.Save(filepath.Join(dir, "appointments.json"), []schedule.Slot{
		{Doctor: "Dr. Smith", Date: "2100-01-02", Time: "10:00", Status: schedule.StatusAvailable},
	}))

	patientRepo, err := patients.NewFileRepository(filepath.Join(dir, "patients.json"))
	require.NoError(t, err)
	doctorRepo, err := doctors.NewRepository(filepath.Join(dir, "doctors.json"))
	require.NoError(t, err)
	faqRepo, err := faq.NewRepository(filepath.Join(dir, "faqs.json"))
	require.NoError(t, err)
	entries, err := triage.LoadDiseaseMap(filepath.Join(dir, "disease_map.json"))
	require.NoError(t, err)
	slotRepo, err := schedule.NewRepository(filepath.Join(dir, "appointments.json"))
	require.NoError(t, err)

	scheduleSvc := schedule.NewService(slotRepo, patientRepo, nil, nil, logger, "Wire the fee first.")
	faqSvc := faq.NewService(faqRepo, nil, staticAssistant{}, nil, logger)
	matcher := triage.NewMatcher(entries, doctorRepo, logger)

	return New(&Config{
		Logger:          logger,
		PatientsHandler: patients.NewHandler(patientRepo, logger),
		DoctorsHandler:  doctors.NewHandler(doctorRepo),
		TriageHandler:   triage.NewHandler(matcher, logger),
		ScheduleHandler: schedule.NewHandler(scheduleSvc, logger),
		FAQHandler:      faq.NewHandler(faqSvc, logger),
	})
}

func get(t *testing.T, router http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec, payload
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health", "/api/health"} {
		rec, payload := get(t, router, path)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "healthy", payload["status"])
	}
}

func TestUnknownEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, payload := get(t, router, "/api/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Endpoint not found", payload["message"])
}

func TestRoutesAreWired(t *testing.T) {
	router := newTestRouter(t)

	rec, payload := get(t, router, "/api/doctors")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])

	rec, payload = get(t, router, "/api/available-slots")
	assert.Equal(t, http.StatusOK, rec.Code)
	slots, ok := payload["available_slots"].([]any)
	require.True(t, ok)
	assert.Len(t, slots, 1)
}
