package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fazalurrehmanAI/hospital-receptionist/internal/doctors"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/faq"
	httpmiddleware "github.com/fazalurrehmanAI/hospital-receptionist/internal/http/middleware"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/patients"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/schedule"
	"github.com/fazalurrehmanAI/hospital-receptionist/internal/triage"
	"github.com/fazalurrehmanAI/hospital-receptionist/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	PatientsHandler    *patients.Handler
	DoctorsHandler     *doctors.Handler
	TriageHandler      *triage.Handler
	ScheduleHandler    *schedule.Handler
	FAQHandler         *faq.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Requests per second and burst allowed on the generative endpoints.
	AIRateLimit float64
	AIRateBurst int
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", healthCheck)

		api.Post("/register", cfg.PatientsHandler.Register)
		api.Get("/patient/{name}", cfg.PatientsHandler.Get)

		api.Get("/doctors", cfg.DoctorsHandler.List)
		api.Post("/doctor-suggestion", cfg.TriageHandler.SuggestDoctor)

		api.Get("/available-slots", cfg.ScheduleHandler.AvailableSlots)
		api.Post("/book-appointment", cfg.ScheduleHandler.Book)
		api.Post("/cancel-appointment", cfg.ScheduleHandler.Cancel)
		api.Post("/reschedule-slots", cfg.ScheduleHandler.RescheduleSlots)
		api.Post("/reschedule-appointment", cfg.ScheduleHandler.Reschedule)
		api.Get("/appointments/{name}", cfg.ScheduleHandler.Appointments)

		// The generative endpoints are rate limited per IP to bound
		// model spend.
		api.Group(func(ai chi.Router) {
			if cfg.AIRateLimit > 0 {
				ai.Use(httpmiddleware.RateLimit(cfg.AIRateLimit, cfg.AIRateBurst))
			}
			ai.Post("/faq", cfg.FAQHandler.Answer)
			ai.Post("/ai-query", cfg.FAQHandler.Query)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success": false, "message": "Endpoint not found"}`))
	})

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy", "message": "Hospital Receptionist API is running"}`))
}
