package patients

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/fazalurrehmanAI/hospital-receptionist/pkg/logging"
)

// Handler handles HTTP requests for patient registration and lookup.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new patients handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// Register handles POST /api/register requests
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode register request", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	p, err := h.repo.Register(r.Context(), &req)
	if err != nil {
		var missing *MissingFieldError
		if errors.As(err, &missing) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"message": "Missing required field: " + missing.Field,
			})
			return
		}
		h.logger.Error("failed to register patient", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	h.logger.Info("patient registered", "patient_id", p.ID, "name", p.Name)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    "Patient registered successfully",
		"patient_id": p.ID,
	})
}

// Get handles GET /api/patient/{name} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	p, err := h.repo.GetByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"success": false,
				"message": "Patient not found",
			})
			return
		}
		h.logger.Error("failed to look up patient", "error", err, "name", name)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"patient": p,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
