package triage

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fazalurrehmanAI/hospital-receptionist/pkg/logging"
)

// Handler handles HTTP requests for doctor suggestions.
type Handler struct {
	matcher *Matcher
	logger  *logging.Logger
}

// NewHandler creates a new triage handler
func NewHandler(matcher *Matcher, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{matcher: matcher, logger: logger}
}

type suggestionRequest struct {
	Symptom string `json:"symptom"`
}

// SuggestDoctor handles POST /api/doctor-suggestion requests.
// A resolution miss is part of the conversation, not a transport failure, so
// it is returned as 200 with an error field.
func (h *Handler) SuggestDoctor(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Symptom == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Missing symptom description",
		})
		return
	}

	suggestion, err := h.matcher.Suggest(r.Context(), req.Symptom)
	if err != nil {
		var unavailable *SpecialtyUnavailableError
		switch {
		case errors.Is(err, ErrNoConditionMatch):
			writeJSON(w, http.StatusOK, map[string]any{
				"error": "Sorry, we couldn't find a doctor for your condition. Please try describing it differently.",
			})
		case errors.As(err, &unavailable):
			writeJSON(w, http.StatusOK, map[string]any{
				"error": "No " + unavailable.Specialty + " available in our system.",
			})
		default:
			h.logger.Error("doctor suggestion failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"message": "Internal server error",
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, suggestion)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
